// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package generate

import "context"

// SetPause replaces the pause taken between batch items.
func (service *Service) SetPause(pause func(ctx context.Context) error) {
	service.pause = pause
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command strmgen searches the aggregator and writes STRM libraries from the
// terminal, without running the HTTP server.
//
//	strmgen search 庆余年
//	strmgen generate --vod-id 42 --source lzm3u8 --out show.zip
//	strmgen generate --vod-id 42 --export /srv/emby
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

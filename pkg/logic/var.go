// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

// 命令行没有指定配置文件时，依次尝试以下路径
var defaultConfFilenameList = []string{
	"lalps.conf.json",
	"./conf/lalps.conf.json",
	"../conf/lalps.conf.json",
	"../../conf/lalps.conf.json",
}

const (
	// 单个g711a音频帧，8000采样20毫秒
	audioFrameSize = 160

	// 调试日志中，最多dump多少个rtp包，以及每个包dump多少字节
	debugDumpMaxNum    = 8
	debugDumpPrefixLen = 32
)

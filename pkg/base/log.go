// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"encoding/hex"
	"fmt"

	"github.com/q191201771/naza/pkg/nazabytes"
	"github.com/q191201771/naza/pkg/nazalog"
)

// LogDump 按日志级别限制十六进制dump的次数
//
// trace级别全部打印，debug级别最多打印debugMaxNum次，其他级别不打印
//
type LogDump struct {
	log         nazalog.Logger
	debugMaxNum int
	prefixLen   int

	debugCount int
}

// NewLogDump
//
// @param debugMaxNum: 日志最小级别为debug时，打印的次数阈值
// @param prefixLen:   每次最多dump的字节数
//
func NewLogDump(log nazalog.Logger, debugMaxNum int, prefixLen int) LogDump {
	return LogDump{
		log:         log,
		debugMaxNum: debugMaxNum,
		prefixLen:   prefixLen,
	}
}

func (ld *LogDump) ShouldDump() bool {
	switch ld.log.GetOption().Level {
	case nazalog.LevelTrace:
		return true
	case nazalog.LevelDebug:
		if ld.debugCount >= ld.debugMaxNum {
			return false
		}
		ld.debugCount++
		return true
	}
	return false
}

// Dump
//
// 调用之前需调用 ShouldDump，避免不需要打印时 hex.Dump 的开销
//
func (ld *LogDump) Dump(tag string, b []byte) {
	ld.log.Out(ld.log.GetOption().Level, 3, fmt.Sprintf("%s. len=%d, hex=\n%s", tag, len(b), hex.Dump(nazabytes.Prefix(b, ld.prefixLen))))
}

// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package base 提供被其他多个package依赖的基础内容，自身不依赖任何package
package base

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/q191201771/naza/pkg/bininfo"
)

var startTime string

var readableTimeLayout = "2006-01-02 15:04:05.999 Z0700 MST"

// ReadableNowTime 当前时间，可读字符串形式
func ReadableNowTime() string {
	return time.Now().Format(readableTimeLayout)
}

func GetWd() string {
	dir, _ := os.Getwd()
	return dir
}

func LogoutStartInfo() {
	Log.Infof("     start: %s", startTime)
	Log.Infof("        wd: %s", GetWd())
	Log.Infof("      args: %s", strings.Join(os.Args, " "))
	Log.Infof("   bininfo: %s", bininfo.StringifySingleLine())
	Log.Infof("   version: %s", LalpsFullInfo)
	Log.Infof("    github: %s", LalpsGithubSite)
}

// WrapReadConfigFile 读取配置文件，读取失败时直接退出进程
//
// @param theConfigFile:      命令行中指定的配置文件，为空时依次尝试<defaultConfigFiles>
// @param hookBeforeExit:     退出进程前的回调，可以为nil
//
func WrapReadConfigFile(theConfigFile string, defaultConfigFiles []string, hookBeforeExit func()) []byte {
	if theConfigFile == "" {
		Log.Warnf("config file did not specify in the command line, try to load it in the usual path.")
		for _, dcf := range defaultConfigFiles {
			fi, err := os.Stat(dcf)
			if err == nil && fi.Size() > 0 && !fi.IsDir() {
				Log.Warnf("%s exist. using it as config file.", dcf)
				theConfigFile = dcf
				break
			}
			Log.Warnf("%s not exist.", dcf)
		}

		if theConfigFile == "" {
			flag.Usage()
			if hookBeforeExit != nil {
				hookBeforeExit()
			}
			OsExitAndWaitPressIfWindows(1)
		}
	}

	rawContent, err := os.ReadFile(theConfigFile)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "read conf file failed. file=%s err=%+v\n", theConfigFile, err)
		if hookBeforeExit != nil {
			hookBeforeExit()
		}
		OsExitAndWaitPressIfWindows(1)
	}
	return rawContent
}

// OsExitAndWaitPressIfWindows 刷日志后退出进程，windows下等待按键，避免双击运行时窗口直接关闭
func OsExitAndWaitPressIfWindows(code int) {
	Log.Sync()
	if runtime.GOOS == "windows" {
		_, _ = fmt.Fprintf(os.Stderr, "Press Enter to exit...")
		_, _ = bufio.NewReader(os.Stdin).ReadByte()
	}
	os.Exit(code)
}

func init() {
	startTime = ReadableNowTime()
}

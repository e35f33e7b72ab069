// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

// Entry 命令行程序的入口，出错时直接退出进程
//
func Entry(confFile string) {
	rawContent := base.WrapReadConfigFile(confFile, defaultConfFilenameList, nil)
	config, err := LoadConfAndInitLog(rawContent)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "load conf failed. err=%+v\n", err)
		base.OsExitAndWaitPressIfWindows(1)
	}
	base.LogoutStartInfo()

	stat, err := Run(config)
	if err != nil {
		Log.Errorf("run failed. err=%+v", err)
		base.OsExitAndWaitPressIfWindows(1)
	}
	Log.Infof("done. %s", stat.String())
}

// Run 读取输入文件，打包成rtp包并写入dump文件
//
func Run(config *Config) (stat PipelineStat, err error) {
	video, err := readInputFile(config.InputConfig.VideoFile)
	if err != nil {
		return
	}
	var audio []byte
	if config.InputConfig.AudioFile != "" {
		if audio, err = readInputFile(config.InputConfig.AudioFile); err != nil {
			return
		}
	}
	Log.Infof("read input succ. video=%d, audio=%d", len(video), len(audio))

	p, err := NewPipeline(config)
	if err != nil {
		return
	}
	defer func() {
		if e := p.Dispose(); e != nil && err == nil {
			err = nazaerrors.Wrap(e)
		}
	}()

	b := time.Now()
	err = p.Feed(video, audio)
	stat = p.Stat()
	Log.Infof("feed done. cost=%dms, %s", time.Since(b).Milliseconds(), stat.String())
	return
}

func readInputFile(filename string) ([]byte, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w. file=%s", base.ErrFileNotExist, filename)
		}
		return nil, nazaerrors.Wrap(err)
	}
	return b, nil
}

// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic

import (
	"encoding/json"

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/naza/pkg/nazaerrors"
	"github.com/q191201771/naza/pkg/nazajson"
	"github.com/q191201771/naza/pkg/nazalog"
)

type Config struct {
	ConfVersion  string         `json:"conf_version"`
	RtpConfig    RtpConfig      `json:"rtp"`
	PsConfig     PsConfig       `json:"ps"`
	InputConfig  InputConfig    `json:"input"`
	OutputConfig OutputConfig   `json:"output"`
	LogConfig    nazalog.Option `json:"log"`
}

type RtpConfig struct {
	// PayloadType 视频的打包方式，ps、h264、hevc
	PayloadType    string `json:"payload_type"`
	Ssrc           uint32 `json:"ssrc"`
	FirstSeq       uint16 `json:"first_seq"`
	MaxPayloadSize int    `json:"max_payload_size"`

	// H265NaluTypeCheck 为true时h265按h265的nal type范围检查，否则和h264一样检查[1, 12]
	H265NaluTypeCheck bool `json:"h265_nalu_type_check"`
}

type PsConfig struct {
	FrameRate int  `json:"frame_rate"`
	Hevc      bool `json:"hevc"`
}

type InputConfig struct {
	// VideoFile annexb格式的h264或h265裸流文件
	VideoFile string `json:"video_file"`

	// AudioFile g711a裸数据文件，可以为空
	AudioFile string `json:"audio_file"`

	// AudioInPs 为true时音频也封装成ps，只在 RtpConfig.PayloadType 为ps时有效
	AudioInPs bool `json:"audio_in_ps"`
}

type OutputConfig struct {
	// DumpFile 生成的rtp包写入该文件，为空则不写
	DumpFile string `json:"dump_file"`
}

// VideoPayloadType 校验通过后才可调用
func (c *Config) VideoPayloadType() base.RtpPayloadType {
	pt, _ := base.ParseRtpPayloadType(c.RtpConfig.PayloadType)
	return pt
}

// IsHevc 视频是否为h265
func (c *Config) IsHevc() bool {
	switch c.VideoPayloadType() {
	case base.RtpPayloadTypeHevc:
		return true
	case base.RtpPayloadTypePs:
		return c.PsConfig.Hevc
	}
	return false
}

// LoadConfAndInitLog 解析配置，并使用配置中的log字段初始化全局日志
//
func LoadConfAndInitLog(rawContent []byte) (*Config, error) {
	config, err := LoadConf(rawContent)
	if err != nil {
		return nil, err
	}

	if err = nazalog.Init(func(option *nazalog.Option) {
		*option = config.LogConfig
	}); err != nil {
		return nil, nazaerrors.Wrap(err)
	}

	if config.ConfVersion != base.ConfVersion {
		Log.Warnf("config version invalid. conf version of lalps=%s, conf version of config file=%s",
			base.ConfVersion, config.ConfVersion)
	}
	Log.Infof("load conf succ. config=%+v", config)
	return config, nil
}

// LoadConf 解析配置，没有配置的字段使用默认值，然后做合法性检查
//
func LoadConf(rawContent []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(rawContent, &config); err != nil {
		return nil, nazaerrors.Wrap(err)
	}

	j, err := nazajson.New(rawContent)
	if err != nil {
		return nil, nazaerrors.Wrap(err)
	}

	if !j.Exist("rtp.payload_type") {
		config.RtpConfig.PayloadType = base.RtpPayloadTypePs.ReadableString()
	}
	if !j.Exist("rtp.ssrc") {
		config.RtpConfig.Ssrc = base.RtpDefaultSsrc
	}
	if !j.Exist("rtp.max_payload_size") {
		config.RtpConfig.MaxPayloadSize = base.RtpDefaultMaxPayloadSize
	}
	if !j.Exist("ps.frame_rate") {
		config.PsConfig.FrameRate = base.PsDefaultFrameRate
	}
	if !j.Exist("log.level") {
		config.LogConfig.Level = nazalog.LevelDebug
	}
	if !j.Exist("log.filename") {
		config.LogConfig.Filename = "./logs/lalps.log"
	}
	if !j.Exist("log.is_to_stdout") {
		config.LogConfig.IsToStdout = true
	}
	if !j.Exist("log.is_rotate_daily") {
		config.LogConfig.IsRotateDaily = true
	}
	if !j.Exist("log.short_file_flag") {
		config.LogConfig.ShortFileFlag = true
	}

	if err = config.check(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) check() error {
	pt, ok := base.ParseRtpPayloadType(c.RtpConfig.PayloadType)
	if !ok || !pt.IsVideo() {
		return base.NewErrConfig("rtp.payload_type", c.RtpConfig.PayloadType)
	}
	if c.RtpConfig.MaxPayloadSize < base.RtpMinMaxPayloadSize {
		return base.NewErrConfig("rtp.max_payload_size", c.RtpConfig.MaxPayloadSize)
	}
	if c.PsConfig.FrameRate <= 0 {
		return base.NewErrConfig("ps.frame_rate", c.PsConfig.FrameRate)
	}
	if c.InputConfig.VideoFile == "" {
		return base.NewErrConfig("input.video_file", c.InputConfig.VideoFile)
	}
	if c.InputConfig.AudioInPs && pt != base.RtpPayloadTypePs {
		return base.NewErrConfig("input.audio_in_ps", c.InputConfig.AudioInPs)
	}
	return nil
}

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

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/lalps/pkg/h2645"
	"github.com/q191201771/lalps/pkg/rtprtcp"
	"github.com/q191201771/lalps/pkg/rtpwrapper"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

type PipelineStat struct {
	VideoNaluNum  int
	AudioFrameNum int
	PacketNum     int
	ErrorNum      int
	PayloadBytes  int

	FirstSeq uint16
	LastSeq  uint16
}

func (s PipelineStat) String() string {
	return fmt.Sprintf("video nalu=%d, audio frame=%d, packet=%d, error=%d, payload bytes=%d, seq=[%d, %d]",
		s.VideoNaluNum, s.AudioFrameNum, s.PacketNum, s.ErrorNum, s.PayloadBytes, s.FirstSeq, s.LastSeq)
}

// Pipeline 将视频裸流（以及可选的音频）打包成rtp包，写入dump文件
//
// 视频按nal逐个打包，每个slice类型的nal时间戳递增一帧；
// 音频按160字节一帧，在视频之间按时间戳交织打包。
//
type Pipeline struct {
	config *Config

	videoPt base.RtpPayloadType
	isHevc  bool

	wrapper  *rtpwrapper.Wrapper
	dumpFile *base.DumpFile
	logDump  base.LogDump

	videoTs     uint32 // 90kHz
	videoTsStep uint32
	audioTs     uint32 // 8kHz

	stat     PipelineStat
	writeErr error
}

// NewPipeline <config>需要是校验过的
//
func NewPipeline(config *Config) (*Pipeline, error) {
	p := &Pipeline{
		config:      config,
		videoPt:     config.VideoPayloadType(),
		isHevc:      config.IsHevc(),
		logDump:     base.NewLogDump(Log, debugDumpMaxNum, debugDumpPrefixLen),
		videoTsStep: uint32(base.RtpClockRateVideo / config.PsConfig.FrameRate),
	}

	p.wrapper = rtpwrapper.NewWrapper(func(option *rtpwrapper.WrapperOption) {
		option.Ssrc = config.RtpConfig.Ssrc
		option.FirstSeq = config.RtpConfig.FirstSeq
		option.MaxPayloadSize = config.RtpConfig.MaxPayloadSize
		option.FrameRate = config.PsConfig.FrameRate
		option.HevcPs = config.PsConfig.Hevc
		option.H265NaluTypeCheck = config.RtpConfig.H265NaluTypeCheck
	}).WithObserver(p)
	p.stat.FirstSeq = p.wrapper.Seq()

	if config.OutputConfig.DumpFile != "" {
		p.dumpFile = base.NewDumpFile()
		if err := p.dumpFile.OpenToWrite(config.OutputConfig.DumpFile); err != nil {
			return nil, nazaerrors.Wrap(err)
		}
	}
	return p, nil
}

// Feed 打包全部输入
//
// @param video: annexb格式的视频裸流
// @param audio: g711a裸数据，可以为nil
//
func (p *Pipeline) Feed(video []byte, audio []byte) error {
	err := h2645.IterateNaluAnnexb(video, func(nal []byte) {
		p.stat.VideoNaluNum++
		p.wrapper.Wrap(nal, p.videoPt, p.videoTs)

		naluType := h2645.ParseNaluType(!p.isHevc, nal[0])
		var isVcl bool
		if p.isHevc {
			isVcl = h2645.H265IsVclNalu(naluType)
		} else {
			isVcl = h2645.H264IsVclNalu(naluType)
		}
		if !isVcl {
			return
		}
		p.videoTs += p.videoTsStep

		// 音频追上视频的时间
		for len(audio) > 0 && uint64(p.audioTs)*base.RtpClockRateVideo < uint64(p.videoTs)*base.RtpClockRateAudio {
			audio = p.feedAudio(audio)
		}
	})
	if err != nil {
		return nazaerrors.Wrap(err)
	}

	for len(audio) > 0 {
		audio = p.feedAudio(audio)
	}
	return p.writeErr
}

func (p *Pipeline) Stat() PipelineStat {
	return p.stat
}

func (p *Pipeline) Dispose() error {
	if p.dumpFile == nil {
		return nil
	}
	return p.dumpFile.Close()
}

// ----- implement rtpwrapper.IWrapperObserver ------------------------------------------------------------------------

func (p *Pipeline) OnBefore(raw []byte) {
}

func (p *Pipeline) OnSuccess(pkt rtprtcp.RtpPacket) {
	if p.stat.PacketNum > 0 && rtprtcp.CompareSeq(pkt.Header.Seq, p.stat.LastSeq) != 1 {
		Log.Warnf("seq not increasing. seq=%d, last=%d", pkt.Header.Seq, p.stat.LastSeq)
	}
	p.stat.PacketNum++
	p.stat.PayloadBytes += len(pkt.Payload)
	p.stat.LastSeq = pkt.Header.Seq

	b := pkt.Bytes()
	if p.logDump.ShouldDump() {
		p.logDump.Dump(pkt.DebugString(), b)
	}

	if p.dumpFile == nil || p.writeErr != nil {
		return
	}
	if err := p.dumpFile.Write(uint32(pkt.Header.PacketType), pkt.Header.Timestamp, b); err != nil {
		Log.Errorf("write dump file failed. err=%+v", err)
		p.writeErr = nazaerrors.Wrap(err)
	}
}

func (p *Pipeline) OnError(err error) {
	p.stat.ErrorNum++
	Log.Warnf("wrap failed. err=%+v", err)
}

// ---------------------------------------------------------------------------------------------------------------------

// feedAudio 打包一帧音频，返回剩余的数据
func (p *Pipeline) feedAudio(audio []byte) []byte {
	n := audioFrameSize
	if n > len(audio) {
		n = len(audio)
	}
	frame := audio[:n]
	p.stat.AudioFrameNum++

	if p.config.InputConfig.AudioInPs {
		// 与视频共用一条ps流，rtp时间戳也使用90kHz
		p.wrapper.WrapPsAudio(frame, uint32(uint64(p.audioTs)*base.RtpClockRateVideo/base.RtpClockRateAudio))
	} else {
		p.wrapper.Wrap(frame, base.RtpPayloadTypePcm, p.audioTs)
	}
	p.audioTs += audioFrameSize
	return audio[n:]
}

var _ rtpwrapper.IWrapperObserver = &Pipeline{}

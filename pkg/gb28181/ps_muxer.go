// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package gb28181

import (
	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazabits"
)

// PsMuxer 将h264/h265的nal以及g711音频封装成ps(Program Stream)流
//
// 关键帧：PS header | PS system header | PS system map | PES header | raw data
// 非关键帧：PS header | PES header | raw data
// 音频：PS header | PES header | raw data
//
// 内部维护scr、pts、dts、音频pts，单位都是90kHz，33位翻转。
// 不支持B帧，dts永远等于pts。
//
// 注意，非协程安全。一路流对应一个PsMuxer。
//
type PsMuxer struct {
	option PsMuxerOption

	scrBase  uint64
	pts      uint64
	dts      uint64
	audioPts uint64
}

type PsMuxerOption struct {
	FrameRate int

	// VideoStreamType StreamTypeH264 或 StreamTypeH265，写入节目流映射中
	VideoStreamType uint8

	InitScr      uint64
	InitPts      uint64
	InitAudioPts uint64
}

var defaultPsMuxerOption = PsMuxerOption{
	FrameRate:       25,
	VideoStreamType: StreamTypeH264,
	InitScr:         psDefaultTs,
	InitPts:         psDefaultTs,
	InitAudioPts:    0,
}

type ModPsMuxerOption func(option *PsMuxerOption)

func NewPsMuxer(modOptions ...ModPsMuxerOption) *PsMuxer {
	option := defaultPsMuxerOption
	for _, fn := range modOptions {
		fn(&option)
	}
	if option.FrameRate <= 0 {
		Log.Warnf("invalid frame rate, use default. frameRate=%d, default=%d", option.FrameRate, defaultPsMuxerOption.FrameRate)
		option.FrameRate = defaultPsMuxerOption.FrameRate
	}

	return &PsMuxer{
		option:   option,
		scrBase:  option.InitScr & maxTs33,
		pts:      option.InitPts & maxTs33,
		dts:      option.InitPts & maxTs33,
		audioPts: option.InitAudioPts & maxTs33,
	}
}

// PackageFrameIdr 关键帧打包
//
// @param isSps: 为true时只返回PES包，不包含PS header、system header、map，
//               因为紧随其后的关键帧会携带这些信息
//
// @return 内存块为独立新申请。<payload>为nil时返回nil
//
func (m *PsMuxer) PackageFrameIdr(payload []byte, isSps bool) []byte {
	if payload == nil {
		return nil
	}

	pes := m.VideoPes(payload)
	if isSps {
		return pes
	}

	psHeader := m.PsHeader(m.option.VideoStreamType)
	return concat(psHeader, psSystemHeaderVideo, m.ProgramStreamMap(), pes)
}

// PackageFrameP 非关键帧打包，只包含PS header以及PES
//
func (m *PsMuxer) PackageFrameP(payload []byte) []byte {
	if payload == nil {
		return nil
	}

	psHeader := m.PsHeader(m.option.VideoStreamType)
	pes := m.VideoPes(payload)
	return concat(psHeader, pes)
}

// PackageAudio g711a音频打包
//
func (m *PsMuxer) PackageAudio(payload []byte) []byte {
	if payload == nil {
		return nil
	}

	psHeader := m.PsHeader(StreamTypeG711A)
	pes := m.AudioPes(payload)
	return concat(psHeader, pes)
}

// PsHeader 生成PS header，并按打包类型递增scr
//
// @param packageType: 视频 StreamTypeH264 或 StreamTypeH265，scr递增 90000/帧率
//                     音频 StreamTypeG711A，scr递增 8000*0.02
//
// @return 其他类型返回nil
//
func (m *PsMuxer) PsHeader(packageType uint8) []byte {
	var step uint64
	switch packageType {
	case StreamTypeH264, StreamTypeH265:
		step = m.videoFrameDuration()
	case StreamTypeG711A:
		step = audioFrameDuration
	default:
		Log.Warnf("unsupported ps package type. type=%d", packageType)
		return nil
	}

	out := make([]byte, PsHeaderLen)
	bele.BePutUint32(out, psPackStartCodePackHeader)

	scr := m.scrBase
	bw := nazabits.NewBitWriter(out[4:])
	// '01'
	bw.WriteBits8(2, 0x01)
	// system_clock_reference_base [32..30]
	bw.WriteBits8(3, uint8(scr>>30)&0x07)
	bw.WriteBits8(1, 1)
	// system_clock_reference_base [29..15]
	bw.WriteBits16(15, uint16(scr>>15)&0x7FFF)
	bw.WriteBits8(1, 1)
	// system_clock_reference_base [14..0]
	bw.WriteBits16(15, uint16(scr)&0x7FFF)
	bw.WriteBits8(1, 1)
	// system_clock_reference_extension
	bw.WriteBits16(9, 0)
	bw.WriteBits8(1, 1)
	// program_mux_rate，22位，连同marker位编码后为 00 FA 07
	bw.WriteBits8(6, uint8(psMuxRate>>16)&0x3F)
	bw.WriteBits16(16, uint16(psMuxRate&0xFFFF))
	bw.WriteBits8(2, 0x03)
	// reserved, pack_stuffing_length
	bw.WriteBits8(5, 0x1F)
	bw.WriteBits8(3, psHeaderStuffingSize)

	for i := PsHeaderLen - psHeaderStuffingSize; i < PsHeaderLen; i++ {
		out[i] = 0xFF
	}

	m.scrBase = (m.scrBase + step) & maxTs33
	return out
}

// SystemHeader 固定的系统头
//
// @param packageType: 视频类型返回18字节的视频系统头，StreamTypeG711A返回24字节的音频系统头，其他类型返回nil
//
func (m *PsMuxer) SystemHeader(packageType uint8) []byte {
	switch packageType {
	case StreamTypeH264, StreamTypeH265:
		return concat(psSystemHeaderVideo)
	case StreamTypeG711A:
		return concat(psSystemHeaderAudio)
	}
	return nil
}

// ProgramStreamMap 固定的节目流映射，视频stream_type使用 PsMuxerOption.VideoStreamType
//
func (m *PsMuxer) ProgramStreamMap() []byte {
	out := concat(psProgramStreamMap)
	out[psProgramStreamMapVideoStreamTypePos] = m.option.VideoStreamType
	return out
}

// VideoPes 视频PES，包含pts和dts，打包后pts、dts递增 90000/帧率
//
// 注意，PES_packet_length为16位，<payload>长度不应超过 MaxPesPayloadLen
//
func (m *PsMuxer) VideoPes(payload []byte) []byte {
	if len(payload) > MaxPesPayloadLen {
		Log.Warnf("video pes payload too long, PES_packet_length will be truncated. len=%d, max=%d", len(payload), MaxPesPayloadLen)
	}

	out := make([]byte, PesHeaderLenVideo+len(payload))
	bele.BePutUint32(out, psPackStartCodeVideoStream)
	bele.BePutUint16(out[4:], uint16(PesHeaderLenVideo-6+len(payload)))
	out[6] = 0x88
	out[7] = 0xC0 // PTS_DTS_flags '11'
	out[8] = 0x0A // PES_header_data_length
	packPts(out[9:], 0x03, m.pts)
	packPts(out[14:], 0x01, m.dts)
	copy(out[PesHeaderLenVideo:], payload)

	m.pts = (m.pts + m.videoFrameDuration()) & maxTs33
	m.dts = m.pts
	return out
}

// AudioPes 音频PES，只包含pts，打包后音频pts递增 8000*0.02
//
// 音频pts落后视频pts超过阈值时，先同步为视频pts
//
func (m *PsMuxer) AudioPes(payload []byte) []byte {
	if int64(m.pts)-int64(m.audioPts) > audioResyncThreshold {
		Log.Debugf("resync audio pts. pts=%d, audioPts=%d", m.pts, m.audioPts)
		m.audioPts = m.pts
	}

	out := make([]byte, PesHeaderLenAudio+len(payload))
	bele.BePutUint32(out, psPackStartCodeAudioStream)
	bele.BePutUint16(out[4:], uint16(PesHeaderLenAudio-6+len(payload)))
	out[6] = 0x88
	out[7] = 0x80 // PTS_DTS_flags '10'
	out[8] = 0x05 // PES_header_data_length
	packPts(out[9:], 0x02, m.audioPts)
	copy(out[PesHeaderLenAudio:], payload)

	m.audioPts = (m.audioPts + audioFrameDuration) & maxTs33
	return out
}

func (m *PsMuxer) Scr() uint64 {
	return m.scrBase
}

func (m *PsMuxer) Pts() uint64 {
	return m.pts
}

func (m *PsMuxer) Dts() uint64 {
	return m.dts
}

func (m *PsMuxer) AudioPts() uint64 {
	return m.audioPts
}

func (m *PsMuxer) FrameRate() int {
	return m.option.FrameRate
}

// ----- private -------------------------------------------------------------------------------------------------------

func (m *PsMuxer) videoFrameDuration() uint64 {
	return uint64(90000 / m.option.FrameRate)
}

// packPts 33位的pts或dts写入5字节
//
// @param fb: 高4位的标志，pts+dts时pts为'0011'，dts为'0001'，只有pts时为'0010'
//
func packPts(out []byte, fb uint8, pts uint64) {
	out[0] = (fb << 4) | (uint8(pts>>29) & 0x0E) | 1
	out[1] = uint8(pts >> 22)
	out[2] = uint8(pts>>14) | 1
	out[3] = uint8(pts >> 7)
	out[4] = uint8(pts<<1) | 1
}

func concat(items ...[]byte) []byte {
	n := 0
	for _, item := range items {
		n += len(item)
	}
	out := make([]byte, 0, n)
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

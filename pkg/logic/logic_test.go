// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package logic_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/lalps/pkg/logic"
	"github.com/q191201771/lalps/pkg/rtprtcp"
	"github.com/q191201771/naza/pkg/assert"
	"github.com/q191201771/naza/pkg/nazalog"
)

func TestLoadConf(t *testing.T) {
	config, err := logic.LoadConf([]byte(`{"input": {"video_file": "test.h264"}}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, "ps", config.RtpConfig.PayloadType)
	assert.Equal(t, base.RtpDefaultSsrc, config.RtpConfig.Ssrc)
	assert.Equal(t, uint16(0), config.RtpConfig.FirstSeq)
	assert.Equal(t, 1400, config.RtpConfig.MaxPayloadSize)
	assert.Equal(t, 25, config.PsConfig.FrameRate)
	assert.Equal(t, false, config.RtpConfig.H265NaluTypeCheck)
	assert.Equal(t, nazalog.LevelDebug, config.LogConfig.Level)
	assert.Equal(t, true, config.LogConfig.IsToStdout)
	assert.Equal(t, base.RtpPayloadTypePs, config.VideoPayloadType())
	assert.Equal(t, false, config.IsHevc())

	config, err = logic.LoadConf([]byte(`{
		"rtp": {"payload_type": "H265", "ssrc": 1234, "first_seq": 100, "max_payload_size": 1000},
		"ps": {"frame_rate": 30},
		"input": {"video_file": "test.h265"},
		"log": {"level": 3}
	}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, base.RtpPayloadTypeHevc, config.VideoPayloadType())
	assert.Equal(t, true, config.IsHevc())
	assert.Equal(t, uint32(1234), config.RtpConfig.Ssrc)
	assert.Equal(t, uint16(100), config.RtpConfig.FirstSeq)
	assert.Equal(t, 1000, config.RtpConfig.MaxPayloadSize)
	assert.Equal(t, 30, config.PsConfig.FrameRate)
	assert.Equal(t, nazalog.LevelWarn, config.LogConfig.Level)

	config, err = logic.LoadConf([]byte(`{"ps": {"hevc": true}, "input": {"video_file": "test.h265"}}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, true, config.IsHevc())
}

func TestLoadConf_Invalid(t *testing.T) {
	golden := []string{
		`{"rtp": {"payload_type": "pcm"}, "input": {"video_file": "test.h264"}}`,
		`{"rtp": {"payload_type": "aac"}, "input": {"video_file": "test.h264"}}`,
		`{"rtp": {"max_payload_size": 0}, "input": {"video_file": "test.h264"}}`,
		`{"rtp": {"max_payload_size": 3}, "input": {"video_file": "test.h264"}}`,
		`{"ps": {"frame_rate": 0}, "input": {"video_file": "test.h264"}}`,
		`{"rtp": {"payload_type": "h264"}, "input": {"video_file": "test.h264", "audio_in_ps": true}}`,
		`{}`,
	}
	for _, item := range golden {
		_, err := logic.LoadConf([]byte(item))
		assert.Equal(t, true, errors.Is(err, base.ErrConfig))
	}

	_, err := logic.LoadConf([]byte(`{"rtp": `))
	assert.IsNotNil(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	videoFile := writeFile(t, dir, "test.h264", annexb(
		genNal([]byte{0x67, 0x42, 0x00, 0x1F}, 8),
		genNal([]byte{0x68}, 4),
		genNal([]byte{0x65}, 3000),
		genNal([]byte{0x41}, 500),
		genNal([]byte{0x41}, 500),
	))
	audioFile := writeFile(t, dir, "test.g711a", genNal(nil, 400))
	dumpFile := filepath.Join(dir, "out", "test.dump")

	config := loadConf(t, fmt.Sprintf(`{
		"rtp": {"payload_type": "ps"},
		"input": {"video_file": %q, "audio_file": %q},
		"output": {"dump_file": %q}
	}`, videoFile, audioFile, dumpFile))

	stat, err := logic.Run(config)
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, stat.VideoNaluNum)
	assert.Equal(t, 3, stat.AudioFrameNum)
	assert.Equal(t, 10, stat.PacketNum)
	assert.Equal(t, 0, stat.ErrorNum)
	assert.Equal(t, uint16(0), stat.FirstSeq)
	assert.Equal(t, uint16(9), stat.LastSeq)

	// sps pps idr*3 | 音频*2 | p | 音频 | p
	headers, bodies := readDumpFile(t, dumpFile)
	assert.Equal(t, 10, len(headers))
	expectedPt := []uint8{96, 96, 96, 96, 96, 8, 8, 96, 8, 96}
	expectedTs := []uint32{0, 0, 0, 0, 0, 0, 160, 3600, 320, 7200}
	expectedMark := []uint8{1, 1, 0, 0, 1, 1, 1, 1, 1, 1}
	for i, h := range headers {
		assert.Equal(t, uint16(i), h.Seq)
		assert.Equal(t, expectedPt[i], h.PacketType)
		assert.Equal(t, expectedTs[i], h.Timestamp)
		assert.Equal(t, expectedMark[i], h.Mark)
		assert.Equal(t, base.RtpDefaultSsrc, h.Ssrc)
	}
	assert.Equal(t, 80, len(bodies[8])-rtprtcp.RtpFixedHeaderLength)
}

func TestRun_AudioInPs(t *testing.T) {
	dir := t.TempDir()
	videoFile := writeFile(t, dir, "test.h264", annexb(
		genNal([]byte{0x65}, 1000),
		genNal([]byte{0x41}, 500),
	))
	audioFile := writeFile(t, dir, "test.g711a", genNal(nil, 320))
	dumpFile := filepath.Join(dir, "test.dump")

	config := loadConf(t, fmt.Sprintf(`{
		"rtp": {"payload_type": "ps", "ssrc": 287454020, "first_seq": 65535},
		"input": {"video_file": %q, "audio_file": %q, "audio_in_ps": true},
		"output": {"dump_file": %q}
	}`, videoFile, audioFile, dumpFile))

	stat, err := logic.Run(config)
	assert.Equal(t, nil, err)
	assert.Equal(t, 4, stat.PacketNum)
	assert.Equal(t, uint16(65535), stat.FirstSeq)
	assert.Equal(t, uint16(2), stat.LastSeq)

	headers, bodies := readDumpFile(t, dumpFile)
	assert.Equal(t, 4, len(headers))
	expectedTs := []uint32{0, 0, 1800, 3600}
	for i, h := range headers {
		assert.Equal(t, uint8(base.RtpPayloadTypePs), h.PacketType)
		assert.Equal(t, expectedTs[i], h.Timestamp)
		assert.Equal(t, uint32(0x11223344), h.Ssrc)
	}
	// 音频ps：ps header + audio pes header + 160
	assert.Equal(t, rtprtcp.RtpFixedHeaderLength+16+14+160, len(bodies[1]))
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0xC0}, bodies[1][rtprtcp.RtpFixedHeaderLength+16:rtprtcp.RtpFixedHeaderLength+20])
}

func TestRun_Hevc(t *testing.T) {
	dir := t.TempDir()
	videoFile := writeFile(t, dir, "test.h265", annexb(
		genNal([]byte{0x40, 0x01}, 20),
		genNal([]byte{0x42, 0x01}, 40),
		genNal([]byte{0x44, 0x01}, 6),
		genNal([]byte{0x26, 0x01}, 3000),
		genNal([]byte{0x02, 0x01}, 300),
	))

	config := loadConf(t, fmt.Sprintf(`{
		"rtp": {"payload_type": "hevc"},
		"input": {"video_file": %q}
	}`, videoFile))

	// vps的第一个字节低5位为0，默认检查会报错，但仍然打包
	stat, err := logic.Run(config)
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, stat.VideoNaluNum)
	assert.Equal(t, 0, stat.AudioFrameNum)
	assert.Equal(t, 7, stat.PacketNum)
	assert.Equal(t, 1, stat.ErrorNum)

	config = loadConf(t, fmt.Sprintf(`{
		"rtp": {"payload_type": "hevc", "h265_nalu_type_check": true},
		"input": {"video_file": %q}
	}`, videoFile))
	assert.Equal(t, true, config.RtpConfig.H265NaluTypeCheck)

	stat, err = logic.Run(config)
	assert.Equal(t, nil, err)
	assert.Equal(t, 7, stat.PacketNum)
	assert.Equal(t, 0, stat.ErrorNum)
}

func TestRun_UnknownNaluType(t *testing.T) {
	dir := t.TempDir()
	videoFile := writeFile(t, dir, "test.h264", annexb(
		genNal([]byte{0x7F}, 20),
		genNal([]byte{0x65}, 20),
	))
	config := loadConf(t, fmt.Sprintf(`{"rtp": {"payload_type": "h264"}, "input": {"video_file": %q}}`, videoFile))

	stat, err := logic.Run(config)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, stat.ErrorNum)
	assert.Equal(t, 2, stat.PacketNum)
}

func TestRun_FileNotExist(t *testing.T) {
	config := loadConf(t, `{"input": {"video_file": "/not/exist/test.h264"}}`)
	_, err := logic.Run(config)
	assert.Equal(t, true, errors.Is(err, base.ErrFileNotExist))
}

// ---------------------------------------------------------------------------------------------------------------------

func loadConf(t *testing.T, raw string) *logic.Config {
	config, err := logic.LoadConf([]byte(raw))
	assert.Equal(t, nil, err)
	return config
}

// genNal 除了<header>，其他字节都不为0，保证数据中不会出现start code
func genNal(header []byte, size int) []byte {
	nal := make([]byte, size)
	copy(nal, header)
	for i := len(header); i < size; i++ {
		nal[i] = uint8(i%251) + 2
	}
	return nal
}

func annexb(nals ...[]byte) (ret []byte) {
	for _, nal := range nals {
		ret = append(ret, 0x00, 0x00, 0x00, 0x01)
		ret = append(ret, nal...)
	}
	return
}

func writeFile(t *testing.T, dir string, name string, b []byte) string {
	filename := filepath.Join(dir, name)
	err := os.WriteFile(filename, b, 0644)
	assert.Equal(t, nil, err)
	return filename
}

func readDumpFile(t *testing.T, filename string) (headers []rtprtcp.RtpHeader, bodies [][]byte) {
	df := base.NewDumpFile()
	err := df.OpenToRead(filename)
	assert.Equal(t, nil, err)
	defer df.Close()

	for {
		m, err := df.ReadOneMessage()
		if err == io.EOF {
			break
		}
		assert.Equal(t, nil, err)
		h, err := rtprtcp.ParseRtpHeader(m.Body)
		assert.Equal(t, nil, err)
		assert.Equal(t, uint32(h.PacketType), m.Typ)
		assert.Equal(t, h.Timestamp, m.Timestamp)
		headers = append(headers, h)
		bodies = append(bodies, m.Body)
	}
	return
}

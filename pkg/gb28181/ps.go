// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package gb28181

// ISO/IEC iso13818-1
//
// 2.5.3.3 Pack layer of Program Stream
// Table 2-33 - Program Stream pack header
//
// 2.5.3.5 System header
// Table 2-32 - Program Stream system header
//
// 2.5.4 Program Stream map
// Table 2-35 - Program Stream map
//
// 2.4.3.7 Semantic definition of fields in PES packet

const (
	psPackStartCodePackHeader       = 0x01ba
	psPackStartCodeSystemHeader     = 0x01bb
	psPackStartCodeProgramStreamMap = 0x01bc
	psPackStartCodeAudioStream      = 0x01c0
	psPackStartCodeVideoStream      = 0x01e0
)

// StreamType 节目流映射中的stream_type，同时也作为 PsMuxer.PsHeader 的打包类型
const (
	StreamTypeMpeg4Video uint8 = 0x10
	StreamTypeH264       uint8 = 0x1b
	StreamTypeH265       uint8 = 0x24
	StreamTypeSvacVideo  uint8 = 0x80
	StreamTypeG711A      uint8 = 0x90 //PCMA
	StreamTypeG7221      uint8 = 0x92
	StreamTypeG7231      uint8 = 0x93
	StreamTypeG729       uint8 = 0x99
	StreamTypeSvacAudio  uint8 = 0x9b
)

const (
	StreamIdVideo = 0xe0
	StreamIdAudio = 0xc0
)

const (
	// PsHeaderLen 包含2字节的stuffing
	PsHeaderLen          = 16
	SysHeaderLenVideo    = 18
	SysHeaderLenAudio    = 24
	ProgramStreamMapLen  = 30
	PesHeaderLenVideo    = 19
	PesHeaderLenAudio    = 14
	psHeaderStuffingSize = 2
)

const (
	MaxPesLen = 0xFFFF

	// MaxPesPayloadLen PES_packet_length字段为16位，视频PES头中该字段之后还有13字节
	MaxPesPayloadLen = MaxPesLen - (PesHeaderLenVideo - 6)

	// MaxPsLen 单个ps包的数据长度上限
	MaxPsLen = 65400
)

const (
	// psMuxRate program_mux_rate，单位50字节/秒
	psMuxRate = 16001

	// 33位的scr、pts、dts
	maxTs33 uint64 = 1<<33 - 1

	psDefaultTs uint64 = 9999999

	// 音频按8000采样，每包20毫秒
	audioFrameDuration uint64 = 8000 * 20 / 1000

	// 音频pts与视频pts的差值超过该阈值时，音频pts重新同步为视频pts
	audioResyncThreshold = 500000
)

// psSystemHeaderVideo 视频系统头，固定值
var psSystemHeaderVideo = []byte{
	0x00, 0x00, 0x01, 0xBB, 0x00, 0x0C, 0x80, 0x1E,
	0xFF, 0xFE, 0xE1, 0x7F, 0xE0, 0xE0, 0xD8, 0xC0,
	0xC0, 0x20,
}

// psSystemHeaderAudio 音频系统头，包含0xbd、0xbf私有流
var psSystemHeaderAudio = []byte{
	0x00, 0x00, 0x01, 0xBB, 0x00, 0x12, 0x80, 0x7D,
	0x03, 0x04, 0xE1, 0x7F, 0xE0, 0xE0, 0x80, 0xC0,
	0xC0, 0x08, 0xBD, 0xE0, 0x80, 0xBF, 0xE0, 0x80,
}

// psProgramStreamMap 节目流映射
//
// 视频 stream_type=0x1b(h264) es_id=0xe0，带一个6字节的ISO_639_language_descriptor("eng")
// 音频 stream_type=0x90(g711a) es_id=0xc0
//
// 注意，末尾4字节的CRC_32是固定值，接收端一般不校验
//
var psProgramStreamMap = []byte{
	0x00, 0x00, 0x01, 0xBC, 0x00, 0x18, 0xE1, 0xFF,
	0x00, 0x00, 0x00, 0x08, 0x1B, 0xE0, 0x00, 0x06,
	0x0A, 0x04, 0x65, 0x6E, 0x67, 0x00, 0x90, 0xC0,
	0x00, 0x00, 0x23, 0xB9, 0x0F, 0x3D,
}

// psProgramStreamMapVideoStreamTypePos 节目流映射中视频stream_type的位置
const psProgramStreamMapVideoStreamTypePos = 12

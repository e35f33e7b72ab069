// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package h2645

import "errors"

// 无特殊说明的函数则同时支持h264和h265两种格式

var ErrH2645 = errors.New("lalps.h2645: fxxk")

var (
	NaluStartCode3 = []byte{0x0, 0x0, 0x1}
	NaluStartCode4 = []byte{0x0, 0x0, 0x0, 0x1}
)

const (
	H264NaluTypeSlice    uint8 = 1
	H264NaluTypeIdrSlice uint8 = 5
	H264NaluTypeSei      uint8 = 6
	H264NaluTypeSps      uint8 = 7
	H264NaluTypePps      uint8 = 8
	H264NaluTypeAud      uint8 = 9  // Access Unit Delimiter
	H264NaluTypeFd       uint8 = 12 // Filler Data

	// H264NaluTypeMin H264NaluTypeMax 单个nal包合法的type范围，超出范围的认为是未知类型
	H264NaluTypeMin = H264NaluTypeSlice
	H264NaluTypeMax = H264NaluTypeFd
)

// ISO_IEC_23008-2_2013.pdf
// Table 7-1 – NAL unit type codes and NAL unit type classes
const (
	H265NaluTypeSliceTrailN uint8 = 0 // 0x0
	H265NaluTypeSliceTrailR uint8 = 1 // 0x01

	H265NaluTypeSliceIdr    uint8 = 19 // 0x13
	H265NaluTypeSliceIdrNlp uint8 = 20 // 0x14
	H265NaluTypeSliceCranut uint8 = 21 // 0x15

	H265NaluTypeVps       uint8 = 32 // 0x20
	H265NaluTypeSps       uint8 = 33 // 0x21
	H265NaluTypePps       uint8 = 34 // 0x22
	H265NaluTypeAud       uint8 = 35 // 0x23
	H265NaluTypeSei       uint8 = 39 // 0x27
	H265NaluTypeSeiSuffix uint8 = 40 // 0x28

	// H265NaluTypeMax 41~47保留，48~63未定义（rtp中48 AP，49 FU）
	H265NaluTypeMax = H265NaluTypeSeiSuffix
)

var H264NaluTypeMapping = map[uint8]string{
	H264NaluTypeSlice:    "SLICE",
	H264NaluTypeIdrSlice: "IDR",
	H264NaluTypeSei:      "SEI",
	H264NaluTypeSps:      "SPS",
	H264NaluTypePps:      "PPS",
	H264NaluTypeAud:      "AUD",
	H264NaluTypeFd:       "FD",
}

var H265NaluTypeMapping = map[uint8]string{
	H265NaluTypeSliceTrailR: "SLICE",
	H265NaluTypeSliceIdr:    "I",
	H265NaluTypeSliceIdrNlp: "IDR",
	H265NaluTypeVps:         "VPS",
	H265NaluTypeSps:         "SPS",
	H265NaluTypePps:         "PPS",
	H265NaluTypeAud:         "AUD",
	H265NaluTypeSei:         "SEI",
	H265NaluTypeSeiSuffix:   "SEI",
}

// ParseNaluType
//
// @param v: nal header的第一个字节
//
func ParseNaluType(isH264 bool, v uint8) uint8 {
	if isH264 {
		return v & 0x1F
	}
	// 6 bit in middle
	// 0*** ***0
	return (v >> 1) & 0x3F
}

func ParseNaluTypeReadable(isH264 bool, v uint8) string {
	var (
		ret string
		ok  bool
	)
	t := ParseNaluType(isH264, v)
	if isH264 {
		ret, ok = H264NaluTypeMapping[t]
	} else {
		ret, ok = H265NaluTypeMapping[t]
	}
	if !ok {
		return "unknown"
	}
	return ret
}

func IsKnownNaluType(isH264 bool, typ uint8) bool {
	if isH264 {
		return typ >= H264NaluTypeMin && typ <= H264NaluTypeMax
	}
	return typ <= H265NaluTypeMax
}

// H264IsVclNalu slice类型的nal，一个nal对应一帧
func H264IsVclNalu(typ uint8) bool {
	return typ >= H264NaluTypeSlice && typ <= H264NaluTypeIdrSlice
}

func H265IsVclNalu(typ uint8) bool {
	return typ < H265NaluTypeVps
}

// StartCodeLen 返回<nalu>头部start code的长度，没有start code则返回0
//
func StartCodeLen(nalu []byte) int {
	if len(nalu) >= 4 && nalu[0] == 0 && nalu[1] == 0 && nalu[2] == 0 && nalu[3] == 1 {
		return 4
	}
	if len(nalu) >= 3 && nalu[0] == 0 && nalu[1] == 0 && nalu[2] == 1 {
		return 3
	}
	return 0
}

// RemoveStartCode 去除头部3字节或4字节的start code，没有start code时原样返回
//
// @return 返回的切片引用<nalu>的内存块
//
func RemoveStartCode(nalu []byte) []byte {
	return nalu[StartCodeLen(nalu):]
}

// IterateNaluStartCode 从<start>位置开始查找下一个start code
//
// @return pos:    start code的位置，没找到返回-1
//         length: start code的长度，3或4
//
func IterateNaluStartCode(nalu []byte, start int) (pos, length int) {
	if nalu == nil || start >= len(nalu) {
		return -1, -1
	}
	count := 0
	for i := range nalu[start:] {
		switch nalu[start+i] {
		case 0:
			count++
		case 1:
			if count >= 2 {
				return start + i - count, count + 1
			}
			count = 0
		default:
			count = 0
		}
	}
	return -1, -1
}

// IterateNaluAnnexb 遍历annexb格式的nalu流，回调的nal不包含start code
//
// @param nals: 注意，第一个nal前如果没有start code，也会当成一个nal处理
//
func IterateNaluAnnexb(nals []byte, handler func(nal []byte)) error {
	if len(nals) == 0 {
		return ErrH2645
	}

	prePos, preLength := IterateNaluStartCode(nals, 0)
	if prePos == -1 {
		handler(nals)
		return nil
	}
	if prePos > 0 {
		// start code之前的数据也透传出去
		handler(nals[:prePos])
	}

	for {
		start := prePos + preLength
		pos, length := IterateNaluStartCode(nals, start)
		if pos == -1 {
			if start < len(nals) {
				handler(nals[start:])
			}
			return nil
		}
		if pos > start {
			// 连续的start code中间没有数据，跳过
			handler(nals[start:pos])
		}
		prePos, preLength = pos, length
	}
}

func SplitNaluAnnexb(nals []byte) (nalList [][]byte, err error) {
	err = IterateNaluAnnexb(nals, func(nal []byte) {
		nalList = append(nalList, nal)
	})
	return
}

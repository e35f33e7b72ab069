// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"errors"
	"fmt"
)

// ----- 通用的 ---------------------------------------------------------------------------------------------------------

var (
	ErrShortBuffer  = errors.New("lalps: buffer too short")
	ErrFileNotExist = errors.New("lalps: file not exist")
	ErrDumpFile     = errors.New("lalps: invalid dump file")
)

// ----- pkg/h2645 -----------------------------------------------------------------------------------------------------

var ErrUnknownNaluType = errors.New("lalps.h2645: unknown nal unit type")

// UnknownNaluTypeError 携带了不合法的nal type
//
// 注意，这是一个可恢复的错误，上层通知出去后，该帧继续按非关键帧处理
//
type UnknownNaluTypeError struct {
	NaluType uint8
}

func NewErrUnknownNaluType(naluType uint8) error {
	return &UnknownNaluTypeError{NaluType: naluType}
}

func (e *UnknownNaluTypeError) Error() string {
	return fmt.Sprintf("%s. type=%d", ErrUnknownNaluType.Error(), e.NaluType)
}

func (e *UnknownNaluTypeError) Unwrap() error {
	return ErrUnknownNaluType
}

// ----- pkg/rtprtcp ---------------------------------------------------------------------------------------------------

var (
	ErrRtpRtcpShortBuffer     = errors.New("lalps.rtprtcp: buffer too short")
	ErrUnsupportedPayloadType = errors.New("lalps.rtprtcp: unsupported payload type")
)

// ErrEmptyPayload 去除start code后没有数据
var ErrEmptyPayload = errors.New("lalps.rtpwrapper: empty payload")

func NewErrUnsupportedPayloadType(pt RtpPayloadType) error {
	return fmt.Errorf("%w. pt=%d", ErrUnsupportedPayloadType, pt)
}

// ----- pkg/logic -----------------------------------------------------------------------------------------------------

var ErrConfig = errors.New("lalps.logic: invalid config")

func NewErrConfig(item string, v interface{}) error {
	return fmt.Errorf("%w. item=%s, value=%v", ErrConfig, item, v)
}

// ---------------------------------------------------------------------------------------------------------------------

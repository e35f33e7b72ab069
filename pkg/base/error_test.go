// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base_test

import (
	"errors"
	"testing"

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/naza/pkg/assert"
)

func TestUnknownNaluTypeError(t *testing.T) {
	err := base.NewErrUnknownNaluType(13)
	assert.Equal(t, true, errors.Is(err, base.ErrUnknownNaluType))
	assert.Equal(t, "lalps.h2645: unknown nal unit type. type=13", err.Error())

	var e *base.UnknownNaluTypeError
	assert.Equal(t, true, errors.As(err, &e))
	assert.Equal(t, uint8(13), e.NaluType)
}

func TestNewErrUnsupportedPayloadType(t *testing.T) {
	err := base.NewErrUnsupportedPayloadType(base.RtpPayloadType(97))
	assert.Equal(t, true, errors.Is(err, base.ErrUnsupportedPayloadType))
	assert.Equal(t, false, errors.Is(err, base.ErrUnknownNaluType))
}

func TestRtpPayloadType(t *testing.T) {
	golden := map[string]base.RtpPayloadType{
		"ps":   base.RtpPayloadTypePs,
		"PS":   base.RtpPayloadTypePs,
		"h264": base.RtpPayloadTypeH264,
		"avc":  base.RtpPayloadTypeH264,
		"h265": base.RtpPayloadTypeHevc,
		"hevc": base.RtpPayloadTypeHevc,
		"g711": base.RtpPayloadTypePcm,
		"pcm":  base.RtpPayloadTypePcm,
	}
	for k, v := range golden {
		pt, ok := base.ParseRtpPayloadType(k)
		assert.Equal(t, true, ok)
		assert.Equal(t, v, pt)
		assert.Equal(t, true, pt.IsSupported())
	}
	_, ok := base.ParseRtpPayloadType("aac")
	assert.Equal(t, false, ok)

	assert.Equal(t, 8, int(base.RtpPayloadTypePcm))
	assert.Equal(t, 96, int(base.RtpPayloadTypePs))
	assert.Equal(t, 100, int(base.RtpPayloadTypeHevc))
	assert.Equal(t, 102, int(base.RtpPayloadTypeH264))

	assert.Equal(t, false, base.RtpPayloadTypePcm.IsVideo())
	assert.Equal(t, true, base.RtpPayloadTypePs.IsVideo())
	assert.Equal(t, 8000, base.RtpPayloadTypePcm.ClockRate())
	assert.Equal(t, 90000, base.RtpPayloadTypeH264.ClockRate())
	assert.Equal(t, "unknown", base.RtpPayloadType(97).ReadableString())
	assert.Equal(t, false, base.RtpPayloadType(97).IsSupported())
}

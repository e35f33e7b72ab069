// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package gb28181

import (
	"github.com/q191201771/naza/pkg/nazalog"
)

// gb28181中，视频（以及可选的音频）先封装成ps流，再使用rtp传输

var (
	Log = nazalog.GetGlobalLogger()
)

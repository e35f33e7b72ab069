// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "strings"

// LalpsVersion 整个工程的版本号。注意，该变量由外部脚本修改维护，不要手动在代码中修改
//
const LalpsVersion = "v0.1.0"

// ConfVersion 配置文件的版本号
//
const ConfVersion = "v0.1.0"

var (
	LalpsLibraryName = "lalps"
	LalpsGithubRepo  = "github.com/q191201771/lalps"
	LalpsGithubSite  = "https://github.com/q191201771/lalps"

	// LalpsFullInfo e.g. lalps v0.1.0 (github.com/q191201771/lalps)
	LalpsFullInfo = LalpsLibraryName + " " + LalpsVersion + " (" + LalpsGithubRepo + ")"

	// LalpsVersionDot e.g. 0.1.0
	LalpsVersionDot string
)

func init() {
	LalpsVersionDot = strings.TrimPrefix(LalpsVersion, "v")
}

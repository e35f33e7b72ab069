// Copyright 2022, Chef.  All rights reserved.
// https://github.com/q191201771/lalps
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/q191201771/lalps/pkg/base"
	"github.com/q191201771/lalps/pkg/logic"
	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/q191201771/naza/pkg/nazalog"
)

func main() {
	defer nazalog.Sync()

	confFile := parseFlag()
	logic.Entry(confFile)
}

func parseFlag() string {
	binInfoFlag := flag.Bool("v", false, "show bin info")
	cf := flag.String("c", "", "specify conf file")
	flag.Parse()

	if *binInfoFlag {
		_, _ = fmt.Fprint(os.Stderr, bininfo.StringifyMultiLine())
		_, _ = fmt.Fprintln(os.Stderr, base.LalpsFullInfo)
		os.Exit(0)
	}

	// 为空时 logic.Entry 会尝试从默认路径加载
	if *cf == "" {
		_, _ = fmt.Fprintf(os.Stderr, `
Example:
  ./bin/lalps -c ./conf/lalps.conf.json
`)
	}
	return *cf
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()

	// 標準出力は画像の書き出しに使うことがあるため標準エラー出力に書きます
	uiOut io.Writer = os.Stderr
)

func printSuccess(format string, args ...interface{}) {
	fmt.Fprintf(uiOut, "  %s %s\n", green("✔"), fmt.Sprintf(format, args...))
}

func printFail(format string, args ...interface{}) {
	fmt.Fprintf(uiOut, "  %s %s\n", red("✘"), fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(uiOut, "  %s %s\n", cyan("→"), fmt.Sprintf(format, args...))
}

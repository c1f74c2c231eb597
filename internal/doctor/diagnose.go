// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/internal/cas"
	"github.com/open-cas/casmod/internal/config"
	"github.com/open-cas/casmod/internal/version"
	"github.com/open-cas/casmod/pkg/executor"
	"github.com/open-cas/casmod/pkg/exit"
	"github.com/open-cas/casmod/pkg/kernel"
)

// use var to allow mocking in tests
var (
	output  io.Writer = os.Stdout
	osExit            = os.Exit
)

type ErrorDiagnosis struct {
	Error      error     `yaml:"error" json:"error"`
	Message    string    `yaml:"message" json:"message"`
	Cause      string    `yaml:"cause" json:"cause"`
	ErrorType  string    `yaml:"errorType" json:"errorType"`
	TraceId    string    `yaml:"traceId" json:"traceId"`
	Commit     string    `yaml:"commit" json:"commit"`
	Version    string    `yaml:"version" json:"version"`
	Pid        int       `yaml:"pid" json:"pid"`
	Code       int       `yaml:"code" json:"code"`
	ExitCode   exit.Code `yaml:"exitCode" json:"exitCode"`
	Logfile    string    `yaml:"log" json:"log"`
	Resolution []string  `yaml:"steps" json:"steps"`
}

func toErrorCode(err error) int {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return 10400
	case errorx.IsOfType(err, config.InvalidConfigError):
		return 10422
	case errorx.IsOfType(err, executor.ErrConnection):
		return 10502
	case errorx.HasTrait(err, errorx.Timeout()):
		return 10504
	case errorx.HasTrait(err, kernel.ModuleErrorTrait):
		return 10409
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toExitCode(err error) exit.Code {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return exit.UsageError
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return exit.DataFormatError
	case errorx.IsOfType(err, config.NotFoundError), errorx.IsOfType(err, config.InvalidConfigError):
		return exit.ConfigurationError
	case errorx.IsOfType(err, cas.ErrDeviceNotPresent):
		return exit.DeviceNotPresent
	case errorx.IsOfType(err, executor.ErrConnection):
		return exit.HostUnknown
	case errorx.HasTrait(err, errorx.Timeout()):
		return exit.TemporaryFailure
	case errorx.HasTrait(err, kernel.ModuleErrorTrait):
		return exit.ModuleOperationFailed
	default:
		return exit.GeneralError
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	if e.Cause() == nil {
		return e.Message(), ""
	}
	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure %q is provided.", arg)}
		}
		return []string{"Ensure all required arguments are provided."}
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return []string{"Ensure provided data is in correct format."}
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible", arg)}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	case errorx.IsOfType(err, config.InvalidConfigError):
		return []string{
			"Check the executor and ssh sections of the configuration file.",
			fmt.Sprintf("Settings can also be overridden with %s_* environment variables.", config.EnvPrefix),
		}
	case errorx.IsOfType(err, cas.ErrDeviceNotPresent):
		return []string{
			"Run `casmod modules reload` to load the cache engine modules.",
			"Check `dmesg` on the target for errors reported by cas_cache.",
		}
	case errorx.IsOfType(err, executor.ErrConnection):
		if host, ok := errorx.ExtractProperty(err, executor.PropertyHost); ok {
			return []string{fmt.Sprintf("Ensure %v is reachable over ssh and the credentials are valid.", host)}
		}
		return []string{"Ensure the target is reachable and the credentials are valid."}
	case errorx.HasTrait(err, errorx.Timeout()):
		return []string{"Increase executor.timeout or check whether the target is overloaded."}
	case errorx.HasTrait(err, kernel.ModuleErrorTrait):
		return []string{
			"Ensure the cache engine modules are installed for the running kernel (modinfo cas_cache).",
			"Module operations require root; enable executor.sudo or run as root.",
		}
	default:
		return []string{"Check error message for details or contact support"}
	}
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	traceId, _ := ctx.Value("traceId").(string)

	msg, cause := toErrorMessage(ex)
	code := toExitCode(ex)
	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		TraceId:    traceId,
		Code:       toErrorCode(ex),
		ExitCode:   code,
		Commit:     version.Commit(),
		Version:    version.Number(),
		Pid:        os.Getpid(),
		Logfile:    config.Get().Log.Filename,
		Resolution: findResolution(ex),
	}
}

// CheckErr prints diagnosis and exits with the exit code mapped from err.
// Optional instructions can be provided to give additional context to the user
func CheckErr(ctx context.Context, err error, instructions ...string) {
	if err == nil {
		return
	}

	logx.As().Error().Err(err).Msg("error occurred")
	resp := Diagnose(ctx, err)
	Print(output, resp, instructions...)

	osExit(resp.ExitCode.Int())
}

// Print renders a diagnosis the way CheckErr shows it.
func Print(w io.Writer, resp *ErrorDiagnosis, instructions ...string) {
	_, _ = fmt.Fprintf(w, "%+v\n", resp.Error)
	_, _ = fmt.Fprintf(w, "\n%s%s************************************** Error Diagnostics ******************************************%s\n", Bold, Red, Reset)
	_, _ = fmt.Fprintf(w, "%s*%s\t%sError:%s %s\n", Red, Reset, Bold+White, Reset, resp.Message)
	if resp.Cause != "" {
		_, _ = fmt.Fprintf(w, "%s*%s\t%sCause:%s %s\n", Red, Reset, Bold+White, Reset, resp.Cause)
	}
	_, _ = fmt.Fprintf(w, "%s*%s\t%sError Type:%s %s\n", Red, Reset, Bold+White, Reset, resp.ErrorType)
	_, _ = fmt.Fprintf(w, "%s*%s\t%sError Code:%s %d\n", Red, Reset, Bold+White, Reset, resp.Code)
	_, _ = fmt.Fprintf(w, "%s*%s\t%sExit Code:%s %d\n", Red, Reset, Bold+White, Reset, resp.ExitCode.Int())
	_, _ = fmt.Fprintf(w, "%s*%s\t%sCommit:%s %s\n", Red, Reset, Gray, Reset, resp.Commit)
	_, _ = fmt.Fprintf(w, "%s*%s\t%sPid:%s %d\n", Red, Reset, Gray, Reset, resp.Pid)
	_, _ = fmt.Fprintf(w, "%s*%s\t%sTraceId:%s %s\n", Red, Reset, Gray, Reset, resp.TraceId)
	_, _ = fmt.Fprintf(w, "%s*%s\t%sVersion:%s %s\n", Red, Reset, Gray, Reset, resp.Version)
	if resp.Logfile != "" {
		_, _ = fmt.Fprintf(w, "%s*%s\t%sLogfile:%s %s\n", Red, Reset, Cyan, Reset, resp.Logfile)
	}
	_, _ = fmt.Fprintf(w, "%s%s***************************************************************************************************%s\n", Bold, Red, Reset)
	_, _ = fmt.Fprintf(w, "\n%s%s****************************************** Resolution *********************************************%s\n", Bold, Yellow, Reset)

	// custom instructions come first
	if len(instructions) > 0 && instructions[0] != "" {
		for _, line := range strings.Split(instructions[0], "\n") {
			if line == "" {
				_, _ = fmt.Fprintf(w, "%s*%s\n", Yellow, Reset)
			} else {
				_, _ = fmt.Fprintf(w, "%s*%s\t%s\n", Yellow, Reset, Bold+White+line+Reset)
			}
		}
		if len(resp.Resolution) > 0 {
			_, _ = fmt.Fprintf(w, "%s*%s\n", Yellow, Reset)
		}
	}

	for _, r := range resp.Resolution {
		_, _ = fmt.Fprintf(w, "%s*%s\t%s\n", Yellow, Reset, White+r+Reset)
	}

	_, _ = fmt.Fprintf(w, "%s%s***************************************************************************************************%s\n", Bold, Yellow, Reset)
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/forex/logger"
	"go.uber.org/zap"
)

// ExtensionPrefix prefixes the name of external fx commands.
const ExtensionPrefix = "fx-"

// RunExtension attempts to find and execute an external fx-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The global flags are passed to the extension as environment variables, so
// that it works on the same books.
func RunExtension(subcommand string, args []string) (bool, int) {
	log := logger.Named(appLogger(), "extension")
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log.Debug("external command not found in PATH", zap.String("command", name), zap.Error(err))
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvLedgerFile+"="+*ledgerFile,
		EnvSettingsFile+"="+*settingsFile,
		EnvCurrency+"="+*accountingCurrency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	log.Debug("running external command", zap.String("path", lp), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

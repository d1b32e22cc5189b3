package cmd

import (
	"io"
	"os"

	"symcc/build"
	"symcc/common"
	"symcc/config"
	"symcc/logging"
	"symcc/trace"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `symcc` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("symcc", "symcc resolves the declarations of a C translation unit", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	runCmd := cli.AddSubcommand("run", "replay a declaration trace and emit tentative definitions", true)
	runCmd.AddPrimaryArg("trace-path", "the path to the trace file", true)
	runCmd.AddSelectorArg("format", "f", "the output format", false, []string{"asm", "llvm"})
	runCmd.AddStringArg("output", "o", "the file to write output to", false)
	runCmd.AddFlag("verbose", "v", "trace symbol creation and dump both namespaces")

	cli.AddSubcommand("init", "create a default profile in the working directory", false)
	cli.AddSubcommand("dump-builtins", "print the predeclared symbols", false)
	cli.AddSubcommand("version", "print the symcc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	loglevel := result.Arguments["loglevel"].(string)
	switch subcmdName {
	case "run":
		execRunCommand(subResult, loglevel)
	case "init":
		execInitCommand()
	case "dump-builtins":
		execDumpBuiltinsCommand(loglevel)
	case "version":
		logging.PrintInfoMessage("symcc Version", common.SymccVersion)
	}
}

// execRunCommand executes the run subcommand.  The process exits with a
// non-zero status if the compilation was aborted.
func execRunCommand(result *olive.ArgParseResult, loglevel string) {
	tracePath, _ := result.PrimaryArg()

	logging.Initialize(loglevel)
	prof, ok := loadProfile()
	if !ok {
		os.Exit(1)
	}

	// command line arguments override the profile
	if format, ok := result.Arguments["format"]; ok {
		prof.OutputFormat = format.(string)
	}

	if output, ok := result.Arguments["output"]; ok {
		prof.OutputPath = output.(string)
	}

	if result.HasFlag("verbose") {
		prof.Verbose = true
	}

	if !runTrace(prof, tracePath) {
		os.Exit(1)
	}
}

// runTrace replays the trace at tracePath and writes the tentative
// definitions it leaves behind.  It returns whether compilation succeeded.
func runTrace(prof *config.Profile, tracePath string) bool {
	if prof.Verbose {
		logging.EnableTrace(os.Stderr)
	}

	c, err := build.NewCompiler(prof)
	if err != nil {
		return false
	}

	tr, err := trace.LoadTrace(tracePath)
	if err != nil {
		logging.LogCompileError(err.Error(), logging.LMKTrace)
		logging.LogCompilationFinished()
		return false
	}

	tr.Replay(c)

	if prof.Verbose {
		c.DumpSymbols(os.Stdout)
	}

	var out io.Writer = os.Stdout
	if prof.OutputPath != "" && logging.ShouldProceed() {
		f, err := os.Create(prof.OutputPath)
		if err != nil {
			logging.PrintErrorMessage("Output Error", err)
			return false
		}
		defer f.Close()

		out = f
	}

	// an aborted compilation is reported by the closing summary
	if err := c.Finish(out); err != nil && logging.ShouldProceed() {
		logging.PrintErrorMessage("Output Error", err)
		return false
	}

	logging.LogCompilationFinished()
	return logging.ShouldProceed()
}

// execInitCommand writes the default profile to the working directory
func execInitCommand() {
	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	if err := config.InitProfile(workDir); err != nil {
		logging.PrintErrorMessage("Profile Init Error", err)
	}
}

// execDumpBuiltinsCommand prints the namespaces as they are before any user
// declaration is made
func execDumpBuiltinsCommand(loglevel string) {
	logging.Initialize(loglevel)
	prof, ok := loadProfile()
	if !ok {
		os.Exit(1)
	}

	c, err := build.NewCompiler(prof)
	if err != nil {
		os.Exit(1)
	}

	c.DumpSymbols(os.Stdout)
}

// -----------------------------------------------------------------------------

// loadProfile loads the profile in the working directory, falling back to the
// default profile if there is none.
func loadProfile() (*config.Profile, bool) {
	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return nil, false
	}

	prof, err := config.LoadProfile(workDir)
	if err != nil {
		logging.LogConfigError("Profile", err.Error())
		return nil, false
	}

	return prof, true
}

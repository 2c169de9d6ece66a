package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/psiemens/sconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	testbed "github.com/ohager/signum-smartc-testbed"
	"github.com/ohager/signum-smartc-testbed/engine/simulator"
	"github.com/ohager/signum-smartc-testbed/utils"

	// registers the sample contract program
	_ "github.com/ohager/signum-smartc-testbed/examples/testcontract"
)

type Config struct {
	Contract  string `flag:"contract,c" info:"path to SmartC contract source"`
	Scenario  string `flag:"scenario,s" info:"path to scenario JSON file"`
	Init      string `flag:"init,i" info:"comma-separated initializer bindings, name=value"`
	Verbose   bool   `default:"false" flag:"verbose,v" info:"enable verbose logging"`
	LogFormat string `default:"text" flag:"log-format" info:"logging output format. Valid values (text, JSON)"`
}

const EnvPrefix = "TESTBED"

var conf Config

func main() {
	if err := Cmd().Execute(); err != nil {
		Exit(1, err.Error())
	}
}

// Cmd builds the run command: load a contract, replay a scenario, dump the
// resulting chain state.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testbed",
		Short: "Replays a transaction scenario against a SmartC contract",
		Run: func(cmd *cobra.Command, args []string) {
			logger := initLogger(conf.Verbose)

			if conf.Contract == "" {
				Exit(1, "no contract source given (use --contract)")
			}

			initializers, err := parseInitializers(conf.Init)
			if err != nil {
				Exit(1, err.Error())
			}

			tb := testbed.New(testbed.WithLogger(*logger))

			address, err := tb.LoadContractFile(conf.Contract, initializers)
			if err != nil {
				Exit(1, err.Error())
			}

			if conf.Scenario != "" {
				raw, err := os.ReadFile(conf.Scenario)
				if err != nil {
					Exit(1, err.Error())
				}
				scenario, err := simulator.DecodeScenario(raw)
				if err != nil {
					Exit(1, err.Error())
				}
				if err := tb.RunScenario(scenario); err != nil {
					Exit(1, err.Error())
				}
			}

			for _, tx := range tb.GetTransactions() {
				utils.PrintTransaction(logger, tx)
			}

			for _, account := range tb.Engine().Accounts() {
				utils.PrintAccount(logger, account)
			}

			contract, err := tb.GetContract(testbed.At(address))
			if err != nil {
				Exit(1, err.Error())
			}
			mapEntries, err := tb.GetContractMap(testbed.At(address))
			if err != nil {
				Exit(1, err.Error())
			}
			utils.PrintContract(logger, *contract, mapEntries)
		},
	}

	initConfig(cmd)

	return cmd
}

// parseInitializers turns comma-separated name=value bindings into loader
// initializers. Values parsing as integers bind numerically, everything else
// binds as text.
func parseInitializers(raw string) (testbed.Initializers, error) {
	if raw == "" {
		return nil, nil
	}

	bindings := strings.Split(raw, ",")
	initializers := make(testbed.Initializers, len(bindings))
	for _, binding := range bindings {
		binding = strings.TrimSpace(binding)
		name, value, found := strings.Cut(binding, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid initializer binding %q, expected name=value", binding)
		}
		if number, err := strconv.ParseInt(value, 10, 64); err == nil {
			initializers[name] = number
		} else {
			initializers[name] = value
		}
	}

	return initializers, nil
}

func initLogger(verbose bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.MessageFieldName = "msg"

	switch strings.ToLower(conf.LogFormat) {
	case "json":
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
		return &logger
	default:
		writer := zerolog.ConsoleWriter{Out: os.Stdout}
		logger := zerolog.New(writer).With().Timestamp().Logger().Level(level)
		return &logger
	}
}

func initConfig(cmd *cobra.Command) {
	err := sconfig.New(&conf).
		FromEnvironment(EnvPrefix).
		BindFlags(cmd.PersistentFlags()).
		Parse()
	if err != nil {
		log.Fatal(err)
	}
}

func Exit(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

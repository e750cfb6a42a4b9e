// Package generate is a subcommand of the root command. It generates the CT
// instrumentation script from discovered control files and configured counters.
package generate

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Xilinx/XDP/internal/aieinfo"
	"github.com/Xilinx/XDP/internal/common"
	"github.com/Xilinx/XDP/internal/ctwriter"
	"github.com/Xilinx/XDP/internal/util"
)

const cmdName = "generate"

var examples = []string{
	fmt.Sprintf("  Generate from the current directory:  $ %s %s --profile-config profile.yaml", common.AppName, cmdName),
	fmt.Sprintf("  Generate from a build directory:      $ %s %s --profile-config profile.yaml --search-dir ./build", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Generate the CT instrumentation script for the AIE tracing engine",
	Long:          "",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagProfileConfig string
	flagDevice        uint64
	flagSearchDir     string
)

const (
	flagSearchDirName = "search-dir"
)

func init() {
	Cmd.Flags().StringVar(&flagProfileConfig, common.FlagProfileConfigName, "", "")
	Cmd.Flags().Uint64Var(&flagDevice, common.FlagDeviceName, 0, "")
	Cmd.Flags().StringVar(&flagSearchDir, flagSearchDirName, ".", "")

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
	cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	cmd.Println("Flags:")
	for _, group := range getFlagGroups() {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, flag := range group.Flags {
			flagDefault := ""
			if cmd.Flags().Lookup(flag.Name).DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
			}
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
		}
	}
	cmd.Println("\nGlobal Flags:")
	cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
		flagDefault := ""
		if cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue != "" {
			flagDefault = fmt.Sprintf(" (default: %s)", pf.DefValue)
		}
		cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
	})
	return nil
}

func getFlagGroups() []common.FlagGroup {
	flags := []common.Flag{
		{
			Name: common.FlagProfileConfigName,
			Help: "path to the profile configuration file with device geometry and configured counters",
		},
		{
			Name: common.FlagDeviceName,
			Help: "device id to generate for",
		},
		{
			Name: flagSearchDirName,
			Help: "root directory of the recursive aie_runtime_control<id>.asm search",
		},
	}
	return []common.FlagGroup{{GroupName: "Options", Flags: flags}}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagProfileConfig == "" {
		err := fmt.Errorf("--%s is required", common.FlagProfileConfigName)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	exists, err := util.FileExists(flagProfileConfig)
	if err != nil || !exists {
		err := fmt.Errorf("profile configuration file not found: %s", flagProfileConfig)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	exists, err = util.DirectoryExists(flagSearchDir)
	if err != nil || !exists {
		err := fmt.Errorf("search directory not found: %s", flagSearchDir)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)

	config, err := aieinfo.Load(flagProfileConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	writer := ctwriter.NewCTWriter(config, config, flagDevice, flagSearchDir, appContext.OutputDir)
	if !writer.Generate() {
		err := fmt.Errorf("no CT file generated, run with --debug for details")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	fmt.Printf("CT file written to %s\n", filepath.Join(appContext.OutputDir, ctwriter.CTOutputFilename))
	return nil
}

// Package counters is a subcommand of the root command. It lists the
// performance counters configured for a device together with their computed
// register addresses, as a quick way to inspect what the generated CT script
// will read.
package counters

// Copyright (C) 2025 Advanced Micro Devices, Inc. All rights reserved
// SPDX-License-Identifier: Apache-2.0

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Xilinx/XDP/internal/aieinfo"
	"github.com/Xilinx/XDP/internal/common"
	"github.com/Xilinx/XDP/internal/ctwriter"
	"github.com/Xilinx/XDP/internal/util"
)

const cmdName = "counters"

var examples = []string{
	fmt.Sprintf("  List counters as a table:      $ %s %s --profile-config profile.yaml", common.AppName, cmdName),
	fmt.Sprintf("  Write counters to a workbook:  $ %s %s --profile-config profile.yaml --format xlsx", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "List configured AIE performance counters and their register addresses",
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
	flagFormat        []string
)

func init() {
	Cmd.Flags().StringVar(&flagProfileConfig, common.FlagProfileConfigName, "", "")
	Cmd.Flags().Uint64Var(&flagDevice, common.FlagDeviceName, 0, "")
	Cmd.Flags().StringSliceVar(&flagFormat, common.FlagFormatName, []string{common.FormatTxt}, "")

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
			Help: "device id to list counters for",
		},
		{
			Name: common.FlagFormatName,
			Help: fmt.Sprintf("choose output format(s) from: %s", strings.Join([]string{common.FormatAll, common.FormatTxt, common.FormatXlsx}, ", ")),
		},
	}
	return []common.FlagGroup{{GroupName: "Options", Flags: flags}}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	formatOptions := []string{common.FormatAll, common.FormatTxt, common.FormatXlsx}
	for _, format := range flagFormat {
		if !slices.Contains(formatOptions, format) {
			err := fmt.Errorf("format options are: %s", strings.Join(formatOptions, ", "))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return err
		}
	}
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
	return nil
}

func formatRequested(format string) bool {
	return slices.Contains(flagFormat, format) || slices.Contains(flagFormat, common.FormatAll)
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)

	config, err := aieinfo.Load(flagProfileConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	counters := ctwriter.ConfiguredCounters(config, config, flagDevice)
	if len(counters) == 0 {
		err := fmt.Errorf("no counters configured for device %d", flagDevice)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if formatRequested(common.FormatTxt) {
		fmt.Print(renderCountersText(counters))
	}
	if formatRequested(common.FormatXlsx) {
		reportPath := filepath.Join(appContext.OutputDir, "aie_counters.xlsx")
		if err := renderCountersXlsx(counters, reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return err
		}
		fmt.Printf("Counter report written to %s\n", reportPath)
	}
	return nil
}

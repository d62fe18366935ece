package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/alc-backend/config"
	"github.com/oksasatya/alc-backend/internal/container"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/helpers"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Inspect or advance named counters",
}

var sequenceNextCmd = &cobra.Command{
	Use:   "next <name>",
	Short: "Allocate and print the next value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSequences(cmd, func(seq repo.SequenceAllocator) error {
			n, err := seq.Next(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		})
	},
}

var sequencePeekCmd = &cobra.Command{
	Use:   "peek <name>",
	Short: "Print the last issued value without advancing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSequences(cmd, func(seq repo.SequenceAllocator) error {
			n, err := seq.Peek(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		})
	},
}

func withSequences(cmd *cobra.Command, fn func(repo.SequenceAllocator) error) error {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-admin", cfg.Env, cfg.LogLevel)
	stores, closeStores, err := container.OpenStores(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()
	return fn(stores.Sequences)
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
	sequenceCmd.AddCommand(sequenceNextCmd, sequencePeekCmd)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiankangren/jmetalgo/internal/store"
)

var (
	runsDataDir   string
	olderThanDays int
	forceDelete   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage stored optimization runs",
	Long:  `List, inspect, and delete persisted optimization runs.`,
}

var listRunsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored runs",
	RunE:  runListRuns,
}

var showRunCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show a stored run in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowRun,
}

var cleanRunsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete old runs",
	Long:  `Delete runs older than a given number of days.`,
	RunE:  runCleanRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.AddCommand(listRunsCmd)
	runsCmd.AddCommand(showRunCmd)
	runsCmd.AddCommand(cleanRunsCmd)

	runsCmd.PersistentFlags().StringVar(&runsDataDir, "data-dir", "./data", "Base directory for run storage")

	cleanRunsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete runs older than N days (required)")
	cleanRunsCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation prompt")
}

func runListRuns(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	// Display runs in a table
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tTIMESTAMP\tPROBLEM\tALGORITHM\tFRONT\tEVALS\tSIZE")
	fmt.Fprintln(w, "------\t---------\t-------\t---------\t-----\t-----\t----")

	for _, info := range infos {
		runDir := filepath.Join(runsDataDir, "runs", info.RunID)
		size, err := getDirSize(runDir)
		sizeStr := "unknown"
		if err == nil {
			sizeStr = formatBytes(size)
		}

		timestamp := info.Timestamp.Format("2006-01-02 15:04:05")

		// Truncate run ID for display
		displayID := info.RunID
		if len(displayID) > 12 {
			displayID = displayID[:12] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			displayID,
			timestamp,
			info.Problem,
			info.Algorithm,
			info.FrontSize,
			info.Evaluations,
			sizeStr,
		)
	}

	w.Flush()

	fmt.Printf("\nTotal runs: %d\n", len(infos))
	return nil
}

func runShowRun(cmd *cobra.Command, args []string) error {
	runStore, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	record, err := runStore.LoadRun(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	fmt.Printf("Run: %s\n", record.RunID)
	fmt.Printf("Timestamp: %s\n", record.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("Configuration:")
	fmt.Printf("  Problem: %s\n", record.Config.Problem)
	fmt.Printf("  Algorithm: %s\n", record.Config.Algorithm)
	fmt.Printf("  Population: %d\n", record.Config.PopulationSize)
	fmt.Printf("  Max evaluations: %d\n", record.Config.MaxEvaluations)
	fmt.Printf("  Seed: %d\n", record.Config.Seed)
	fmt.Println()

	fmt.Println("Result:")
	fmt.Printf("  Front size: %d\n", len(record.Objectives))
	fmt.Printf("  Evaluations: %d\n", record.Evaluations)
	fmt.Printf("  Generations: %d\n", record.Generations)
	fmt.Printf("  Computing time: %s\n", record.ComputingTime.Round(time.Millisecond))
	fmt.Println()

	fmt.Println("Objectives:")
	for _, objs := range record.Objectives {
		fmt.Printf("  %v\n", objs)
	}

	return nil
}

func runCleanRuns(cmd *cobra.Command, args []string) error {
	if olderThanDays <= 0 {
		return fmt.Errorf("must specify --older-than")
	}

	runStore, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	infos, err := runStore.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	toDelete := selectRunsForDeletion(infos, olderThanDays)
	if len(toDelete) == 0 {
		fmt.Println("No runs match deletion criteria.")
		return nil
	}

	// Show what will be deleted
	fmt.Printf("Found %d run(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		displayID := info.RunID
		if len(displayID) > 12 {
			displayID = displayID[:12] + "..."
		}
		fmt.Printf("  - %s (%s, %s)\n",
			displayID,
			info.Problem,
			info.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	// Ask for confirmation unless --force is set
	if !forceDelete {
		fmt.Print("\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted := 0
	failed := 0
	for _, info := range toDelete {
		if err := runStore.DeleteRun(info.RunID); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", info.RunID, err)
			failed++
		} else {
			deleted++
		}
	}

	fmt.Printf("\nDeleted %d run(s), %d failed.\n", deleted, failed)
	return nil
}

// selectRunsForDeletion returns the runs older than the cutoff.
func selectRunsForDeletion(infos []store.RunInfo, olderThanDays int) []store.RunInfo {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)

	var toDelete []store.RunInfo
	for _, info := range infos {
		if info.Timestamp.Before(cutoff) {
			toDelete = append(toDelete, info)
		}
	}
	return toDelete
}

// getDirSize calculates the total size of a directory
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

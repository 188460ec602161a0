// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recall-engine/internal/blocks"
	"github.com/pdiddy/recall-engine/pkg/types"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage question/answer blocks (add, list, delete, export)",
}

// --- add subcommand ---

var blockAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a new question/answer block",
	Long: `Add stores a question/answer block with optional tags. Tags may be
given as repeated --tag flags or comma-delimited; duplicates and blank
tokens are dropped.`,
	RunE: runBlockAdd,
}

func runBlockAdd(cmd *cobra.Command, args []string) error {
	question, _ := cmd.Flags().GetString("question")
	answer, _ := cmd.Flags().GetString("answer")
	tagFlags, _ := cmd.Flags().GetStringSlice("tag")

	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	block, err := store.CreateBlock(context.Background(), question, answer, tagFlags)
	if err != nil {
		return err
	}

	fmt.Printf("Stored block %d", block.ID)
	if len(block.Tags) > 0 {
		fmt.Printf(" [%s]", strings.Join(block.Tags, ", "))
	}
	fmt.Println()
	return nil
}

// --- list subcommand ---

var blockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all blocks, most recently created first",
	RunE:  runBlockList,
}

func runBlockList(cmd *cobra.Command, args []string) error {
	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.ListBlocks(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatBlockOutput(all, jsonOutput)
}

func formatBlockOutput(all []types.Block, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	if len(all) == 0 {
		fmt.Println("No blocks stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-40s  %-30s  %s\n", "ID", "Question", "Answer", "Tags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, b := range all {
		question := b.Question
		if len(question) > 40 {
			question = question[:37] + "..."
		}
		answer := b.Answer
		if len(answer) > 30 {
			answer = answer[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-6d  %-40s  %-30s  %s\n",
			b.ID, question, answer, strings.Join(b.Tags, ", "))
	}

	fmt.Fprintf(os.Stdout, "\n%d blocks\n", len(all))
	return nil
}

// --- delete subcommand ---

var blockDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a block by id",
	Long: `Delete removes a block and its tag links. Tags stay in the catalog
even when the deleted block was their only use.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlockDelete,
}

func runBlockDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid block id %q", args[0])
	}

	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.DeleteBlock(context.Background(), id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No block with id %d.\n", id)
		return nil
	}

	fmt.Printf("Deleted block %d.\n", id)
	return nil
}

// --- export subcommand ---

var blockExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all blocks to YAML or JSON",
	RunE:  runBlockExport,
}

func runBlockExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if out == "" {
			out = "export.yaml"
		}
		if err := store.ExportYAML(context.Background(), out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "export.json"
		}
		if err := store.ExportJSON(context.Background(), out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported to %s\n", out)
	return nil
}

func init() {
	blockAddCmd.Flags().String("question", "", "question text (required)")
	blockAddCmd.Flags().String("answer", "", "answer text (required)")
	blockAddCmd.Flags().StringSlice("tag", nil, "tag to link (repeatable, comma-delimited accepted)")

	blockListCmd.Flags().Bool("json", false, "output blocks as JSON")

	blockExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	blockExportCmd.Flags().String("out", "", "output path (default: export.yaml or export.json)")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockListCmd)
	blockCmd.AddCommand(blockDeleteCmd)
	blockCmd.AddCommand(blockExportCmd)

	rootCmd.AddCommand(blockCmd)
}

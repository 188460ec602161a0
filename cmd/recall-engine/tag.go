// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recall-engine/internal/blocks"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Inspect the tag catalog",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tag name in the catalog",
	RunE:  runTagList,
}

func runTagList(cmd *cobra.Command, args []string) error {
	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.ListTagNames(context.Background())
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No tags in the catalog.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

var queryCmd = &cobra.Command{
	Use:   "query [tag]...",
	Short: "Find blocks linked to every given tag",
	Long: `Query returns the blocks whose tags include every given tag, compared
case-insensitively. Blocks carrying only some of the tags are excluded.
With no tags the result is empty.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	store, err := blocks.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	matches, err := store.FindByAllTags(context.Background(), args)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatBlockOutput(matches, jsonOutput)
}

func init() {
	queryCmd.Flags().Bool("json", false, "output blocks as JSON")

	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(queryCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"blogsmith/internal/article/model"

	"github.com/spf13/cobra"
)

var (
	flagSearch string
	flagTopic  string
	flagSortBy string
	flagOrder  string
	flagLimit  int
	flagOffset int
	flagRaw    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate an article and add it to the store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.svc.Generate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderArticle(a, flagRaw))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		q := model.Query{
			Search: flagSearch,
			SortBy: flagSortBy,
			Order:  flagOrder,
			Offset: flagOffset,
		}
		if flagTopic != "" {
			q.Topics = []string{flagTopic}
		}
		if flagLimit > 0 {
			q.Limit = &flagLimit
		}

		res, err := rt.svc.List(cmd.Context(), q)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderList(res))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		a, err := rt.svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderArticle(a, flagRaw))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an article from the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.svc.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s). %d remaining.\n", res.Message, res.DeletedID, res.RemainingCount)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.svc.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderStats(st))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagSearch, "search", "", "case-insensitive substring across title, content and topic")
	listCmd.Flags().StringVar(&flagTopic, "topic", "", "topic substring")
	listCmd.Flags().StringVar(&flagSortBy, "sort", model.SortByCreatedAt, "sort key: createdAt, title or topic")
	listCmd.Flags().StringVar(&flagOrder, "order", model.OrderDesc, "asc or desc")
	listCmd.Flags().IntVar(&flagLimit, "limit", 0, "page size (0 lists everything)")
	listCmd.Flags().IntVar(&flagOffset, "offset", 0, "page start")

	for _, c := range []*cobra.Command{generateCmd, showCmd} {
		c.Flags().BoolVar(&flagRaw, "raw", false, "print the stored content without formatting")
	}
}

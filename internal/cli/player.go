package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerCountCmd())

	return cmd
}

// addFieldFlags registers the writable player fields
func addFieldFlags(f *pflag.FlagSet) {
	f.String("name", "", "Player name (1-12 characters)")
	f.String("title", "", "Player title (up to 30 characters)")
	f.String("race", "", "Race: HUMAN, DWARF, ELF, GIANT, ORC, TROLL, HOBBIT")
	f.String("profession", "", "Profession: WARRIOR, ROGUE, SORCERER, CLERIC, PALADIN, NAZGUL, WARLOCK, DRUID")
	f.String("birthday", "", "Birthday as YYYY-MM-DD, RFC 3339 or Unix milliseconds")
	f.Int("experience", 0, "Experience points (1-10000000)")
	f.Bool("banned", false, "Whether the player is banned")
}

// fieldBody builds a request body from the field flags the user set.
// Unset flags are left out so a patch only touches what was given.
func fieldBody(f *pflag.FlagSet) (map[string]any, error) {
	body := map[string]any{}
	for _, name := range []string{"name", "title", "race", "profession"} {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			body[name] = v
		}
	}
	if f.Changed("birthday") {
		s, _ := f.GetString("birthday")
		t, err := parseTime(s)
		if err != nil {
			return nil, fmt.Errorf("--birthday: %w", err)
		}
		body["birthday"] = t.UnixMilli()
	}
	if f.Changed("experience") {
		v, _ := f.GetInt("experience")
		body["experience"] = v
	}
	if f.Changed("banned") {
		v, _ := f.GetBool("banned")
		body["banned"] = v
	}
	return body, nil
}

func newPlayerCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fieldBody(cmd.Flags())
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post(cmd.Context(), "/api/v1/players", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addFieldFlags(cmd.Flags())
	for _, name := range []string{"name", "title", "race", "profession", "birthday", "experience"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get(cmd.Context(), playerPath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update some fields of a player",
		Long: `Update some fields of a player.

Only the flags given are sent; every other field keeps its stored value.
Changing --experience recomputes the level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fieldBody(cmd.Flags())
			if err != nil {
				return err
			}

			var result Player
			if err := client.Patch(cmd.Context(), playerPath(args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addFieldFlags(cmd.Flags())

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), playerPath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted player %s", args[0]))
			return nil
		},
	}
}

// addFilterFlags registers the search criteria
func addFilterFlags(f *pflag.FlagSet) {
	f.String("name", "", "Name contains (case-sensitive)")
	f.String("title", "", "Title contains")
	f.String("race", "", "Exact race")
	f.String("profession", "", "Exact profession")
	f.String("after", "", "Born on or after (YYYY-MM-DD, RFC 3339 or Unix milliseconds)")
	f.String("before", "", "Born on or before (YYYY-MM-DD, RFC 3339 or Unix milliseconds)")
	f.Bool("banned", false, "Banned flag")
	f.Int("min-experience", 0, "Minimum experience")
	f.Int("max-experience", 0, "Maximum experience")
	f.Int("min-level", 0, "Minimum level")
	f.Int("max-level", 0, "Maximum level")
}

var filterParams = map[string]string{
	"name":           "name",
	"title":          "title",
	"race":           "race",
	"profession":     "profession",
	"banned":         "banned",
	"min-experience": "minExperience",
	"max-experience": "maxExperience",
	"min-level":      "minLevel",
	"max-level":      "maxLevel",
}

// filterQuery encodes the filter flags the user set
func filterQuery(f *pflag.FlagSet) (url.Values, error) {
	q := url.Values{}
	for flag, param := range filterParams {
		if f.Changed(flag) {
			q.Set(param, f.Lookup(flag).Value.String())
		}
	}
	for _, flag := range []string{"after", "before"} {
		if !f.Changed(flag) {
			continue
		}
		s, _ := f.GetString(flag)
		t, err := parseTime(s)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flag, err)
		}
		q.Set(flag, strconv.FormatInt(t.UnixMilli(), 10))
	}
	return q, nil
}

func newPlayerListCmd() *cobra.Command {
	var (
		order      string
		pageNumber int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search players",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filterQuery(cmd.Flags())
			if err != nil {
				return err
			}
			if order != "" {
				q.Set("order", order)
			}
			q.Set("pageNumber", strconv.Itoa(pageNumber))
			q.Set("pageSize", strconv.Itoa(pageSize))

			var result Page
			if err := client.Get(cmd.Context(), "/api/v1/players?"+q.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addFilterFlags(cmd.Flags())
	cmd.Flags().StringVar(&order, "order", "", "Sort by ID, NAME, EXPERIENCE, BIRTHDAY or LEVEL")
	cmd.Flags().IntVar(&pageNumber, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&pageSize, "size", 3, "Page size")

	return cmd
}

func newPlayerCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filterQuery(cmd.Flags())
			if err != nil {
				return err
			}

			path := "/api/v1/players/count"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var result Count
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addFilterFlags(cmd.Flags())

	return cmd
}

func playerPath(id string) string {
	return "/api/v1/players/" + url.PathEscape(id)
}

// parseTime accepts a date, an RFC 3339 timestamp or Unix milliseconds
func parseTime(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
	}
	return t.UTC(), nil
}

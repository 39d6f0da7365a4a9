package cmd

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"studentdb/internal/records"
	"studentdb/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagYes     bool
	flagLimit   int
	flagPlain   bool
	flagHistory string
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the record files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			for _, f := range s.mgr.Files() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty record file (" + records.FileSuffix + " is appended)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			name, err := s.mgr.CreateFile(args[0])
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", name)
			return nil
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Delete a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			file := resolveFile(s.mgr, args[0])
			if !flagYes {
				ok, err := askYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete the file %q?", file))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := s.mgr.RemoveFile(file); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", file)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent operations from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			file := ""
			if flagHistory != "" {
				file = resolveFile(s.mgr, flagHistory)
			}
			entries, err := s.mgr.History(file, flagLimit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			return printMarkdown(cmd.OutOrStdout(), report.History(entries))
		})
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "do not ask for confirmation")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "number of entries to show")
	historyCmd.Flags().StringVar(&flagHistory, "file", "", "only show operations on this file")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "print Markdown instead of rendering it")
	rootCmd.AddCommand(lsCmd, createCmd, rmCmd, historyCmd)
}

// resolveFile accepts a stored name with or without its suffix.
func resolveFile(mgr *records.Manager, arg string) string {
	files := mgr.Files()
	if slices.Contains(files, arg) || strings.HasSuffix(arg, records.FileSuffix) {
		return arg
	}
	if slices.Contains(files, arg+records.FileSuffix) {
		return arg + records.FileSuffix
	}
	return arg
}

func askYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func printMarkdown(w io.Writer, md string) error {
	if flagPlain {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := report.Render(md, 100)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

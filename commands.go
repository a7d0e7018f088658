package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/hifdh/internal/config"
	"github.com/llehouerou/hifdh/internal/errmsg"
	"github.com/llehouerou/hifdh/internal/logging"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/history"
)

func planCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Print the repetition groups of a page without playing it",
		ArgsUsage: "<verse count>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Sequence mode: hifdh, verse or fullpage",
				Value:   "hifdh",
			},
			&cli.IntFlag{
				Name:    "repetitions",
				Aliases: []string{"r"},
				Usage:   "Repetitions per group, or page passes in fullpage mode",
				Value:   config.DefaultRepetitions,
			},
			&cli.IntFlag{
				Name:  "start",
				Usage: "First verse of the sequence (1-based)",
				Value: 1,
			},
		},
		Action: printPlan,
	}
}

func printPlan(_ context.Context, cmd *cli.Command) error {
	verses, err := strconv.Atoi(cmd.Args().First())
	if err != nil {
		return errors.New("plan: expected the number of verses on the page")
	}
	if verses < 0 || verses > quran.MaxPageVerses {
		return fmt.Errorf("plan: %d verses not in [0, %d]", verses, quran.MaxPageVerses)
	}
	if reps := cmd.Int("repetitions"); reps > sequence.MaxRepetitions {
		return fmt.Errorf("plan: %d repetitions above %d", reps, sequence.MaxRepetitions)
	}
	mode, err := sequence.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	groups, err := sequence.Expand(sequence.Config{
		TotalVerses: verses,
		Mode:        mode,
		Repetitions: int(cmd.Int("repetitions")),
		Start:       int(cmd.Int("start")) - 1,
	})
	if err != nil {
		return err
	}

	w := writer(cmd)
	width := len(strconv.Itoa(len(groups)))
	for i, g := range groups {
		nums := make([]string, len(g))
		for j, v := range g {
			nums[j] = strconv.Itoa(v + 1)
		}
		fmt.Fprintf(w, "%*d  %s\n", width, i+1, strings.Join(nums, " "))
	}
	fmt.Fprintf(w, "%s groups, %s verse recitations\n",
		humanize.Comma(int64(len(groups))), humanize.Comma(int64(recitations(groups))))
	return nil
}

func recitations(groups [][]int) int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	return n
}

func pageCommand() *cli.Command {
	return &cli.Command{
		Name:      "page",
		Usage:     "Show the verses of a mushaf page and which have audio",
		ArgsUsage: "<page>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "reciter",
				Usage: "quran.com recitation id (default from config)",
			},
		},
		Action: printPage,
	}
}

func printPage(ctx context.Context, cmd *cli.Command) error {
	number, err := strconv.Atoi(cmd.Args().First())
	if err != nil {
		return errors.New("page: expected a page number")
	}
	if err := quran.ValidatePage(number); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reciter := cfg.GetPlaybackConfig().Reciter
	if cmd.IsSet("reciter") {
		reciter = int(cmd.Int("reciter"))
	}

	library, err := newLibrary(cfg, logging.New(os.Stderr, logLevel(cfg, cmd)))
	if err != nil {
		return err
	}
	page, err := library.LoadPage(ctx, number, reciter)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpPageLoad, strconv.Itoa(number), err))
	}

	w := writer(cmd)
	fmt.Fprintf(w, "Page %d, juz %d, %s to %s, reciter %d\n",
		page.Number, quran.JuzOfPage(page.Number), page.FirstKey(), page.LastKey(), page.Reciter)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Verse", "Audio")
	for _, v := range page.Verses {
		audio := "yes"
		if !v.HasAudio() {
			audio = "missing"
		}
		t.Row(strconv.Itoa(v.Index+1), v.Key, audio)
	}
	fmt.Fprintln(w, t.String())
	return nil
}

func recitersCommand() *cli.Command {
	return &cli.Command{
		Name:   "reciters",
		Usage:  "List the recitations available on quran.com",
		Action: printReciters,
	}
}

func printReciters(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	library, err := newLibrary(cfg, logging.New(os.Stderr, logLevel(cfg, cmd)))
	if err != nil {
		return err
	}

	reciters, err := library.Reciters(ctx)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpRecitersGet, err))
	}

	current := cfg.GetPlaybackConfig().Reciter
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Reciter", "Style", "")
	for _, r := range reciters {
		mark := ""
		if r.ID == current {
			mark = "current"
		}
		t.Row(strconv.Itoa(r.ID), r.Name, r.Style, mark)
	}
	fmt.Fprintln(writer(cmd), t.String())
	return nil
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recently completed pages",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of completions to list",
				Value:   20,
			},
		},
		Action: printHistory,
	}
}

func printHistory(_ context.Context, cmd *cli.Command) error {
	mgr, err := state.Open()
	if err != nil {
		return err
	}
	defer mgr.Close()

	entries, err := mgr.ListCompletions(int(cmd.Int("limit")))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpCompletionHistory, err))
	}
	var sum history.Summary
	if sum.Completed, err = mgr.CompletedPages(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpCompletionHistory, err))
	}
	if sum.Memorized, err = mgr.MemorizedPages(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpCompletionHistory, err))
	}
	writeHistory(writer(cmd), entries, sum)
	return nil
}

func writeHistory(w io.Writer, entries []state.Completion, sum history.Summary) {
	fmt.Fprintf(w, "%d of %d pages memorized (%.1f%%)\n", sum.Memorized, quran.MaxPage, history.Percent(sum.Memorized))
	fmt.Fprintf(w, "%d of %d pages completed at least once\n", sum.Completed, quran.MaxPage)
	if len(entries) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Page", "Mode", "Reps", "Reciter", "Skipped", "When")
	for _, c := range entries {
		mode := c.Mode
		if m, err := sequence.ParseMode(c.Mode); err == nil {
			mode = m.Label()
		}
		t.Row(
			strconv.Itoa(c.Page),
			mode,
			strconv.Itoa(c.Repetitions),
			strconv.Itoa(c.Reciter),
			strconv.Itoa(c.MissingAudio+c.Failures),
			humanize.Time(c.CompletedAt),
		)
	}
	fmt.Fprintln(w, t.String())
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studie-planner/internal/dto"
	"studie-planner/internal/planner"
	"studie-planner/internal/service"
)

func newPreviewCommand() *cobra.Command {
	var (
		file   string
		today  string
		policy string
	)

	command := &cobra.Command{
		Use:   "preview",
		Short: "Print the plan for a test described in a YAML file",
		Example: `  plannerctl preview --file toets.yaml --today 2024-06-03
  plannerctl preview --file toets.yaml --policy immediate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			req, err := parsePreview(data)
			if err != nil {
				return err
			}
			if today != "" {
				req.Today = today
			}

			p, err := newPlanner(policy)
			if err != nil {
				return err
			}
			plan, err := previewPlan(p, req, time.Now())
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	command.Flags().StringVarP(&file, "file", "f", "", "YAML file with datum, onderdelen and optional instellingen")
	command.Flags().StringVar(&today, "today", "", "plan as if today were YYYY-MM-DD")
	command.Flags().StringVar(&policy, "policy", string(planner.StartDeferred), "start policy: deferred or immediate")
	_ = command.MarkFlagRequired("file")

	return command
}

// parsePreview decodes and validates a preview file.
func parsePreview(data []byte) (*dto.PreviewRequest, error) {
	var req dto.PreviewRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	v := validator.New()
	v.SetTagName("binding")
	if err := dto.Register(v); err != nil {
		return nil, err
	}
	if err := v.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid preview file: %s", dto.FirstError(err))
	}
	return &req, nil
}

func newPlanner(policy string) (*planner.Planner, error) {
	sp, err := planner.ParseStartPolicy(policy)
	if err != nil {
		return nil, err
	}
	return planner.New(planner.WithStartPolicy(sp)), nil
}

func previewPlan(p *planner.Planner, req *dto.PreviewRequest, now time.Time) (planner.Plan, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return planner.Plan{}, fmt.Errorf("datum: %w", err)
	}
	today := planner.Day(now)
	if req.Today != "" {
		if today, err = dto.ParseDate(req.Today); err != nil {
			return planner.Plan{}, fmt.Errorf("vandaag: %w", err)
		}
	}
	return service.PreviewPlan(p, date, today, planner.DefaultSettings(), req), nil
}

// printPlan writes the plan grouped per day.
func printPlan(w io.Writer, plan planner.Plan) {
	bold := color.New(color.Bold)
	learn := color.New(color.FgGreen)
	review := color.New(color.FgCyan)
	warn := color.New(color.FgYellow)

	for _, wr := range plan.Warnings {
		warn.Fprintf(w, "! %s: %s\n", wr.Code, wr.Message)
	}
	if len(plan.Entries) == 0 {
		fmt.Fprintln(w, "Geen taken gepland.")
		return
	}

	var current string
	dayMinutes := 0
	flush := func() {
		if current != "" {
			fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 20))
			fmt.Fprintf(w, "  %d min\n\n", dayMinutes)
		}
	}
	for _, e := range plan.Entries {
		d := dto.FormatDate(e.Date)
		if d != current {
			flush()
			current, dayMinutes = d, 0
			bold.Fprintf(w, "%s %s\n", e.Date.Weekday().String()[:3], d)
		}
		c := learn
		if e.Kind == planner.KindReview {
			c = review
		}
		c.Fprintf(w, "  %-8s", e.Kind)
		fmt.Fprintf(w, " %3d min  %s\n", e.Minutes, e.Description)
		dayMinutes += e.Minutes
	}
	flush()

	bold.Fprintf(w, "%d taken, %d leerdagen, %d herhalingsdagen, %d min totaal\n",
		len(plan.Entries), len(plan.LearningDays), len(plan.ReviewDays), plan.TotalMinutes)
}

// Command martha demonstrates the capture-to-entry pipeline from the
// command line: type an entry, simulate a quick capture, and triage the
// result. Entries live in process memory only; each invocation starts a
// fresh store.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/karstegg/martha-assistant-system/internal/capture"
	"github.com/karstegg/martha-assistant-system/internal/config"
	"github.com/karstegg/martha-assistant-system/internal/extract"
	"github.com/karstegg/martha-assistant-system/internal/llm"
	"github.com/karstegg/martha-assistant-system/internal/store"
	"github.com/karstegg/martha-assistant-system/internal/triage"
	"github.com/karstegg/martha-assistant-system/pkg/types"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "martha",
		Short: "Field assistant: turn captures and notes into triaged work items",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "martha.yaml", "config file path")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(captureCmd())
	rootCmd.AddCommand(demoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// pipeline wires the store, completer, and extraction service from config.
func pipeline() (*extract.Service, *store.EntryStore, *config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	st := store.NewEntryStore()
	svc := extract.NewService(llm.NewCompleter(cfg.Completion), st)
	return svc, st, cfg, nil
}

func addCmd() *cobra.Command {
	var (
		entryType   string
		priority    string
		location    string
		topic       string
		people      string
		summary     string
		actionables string
		due         string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create an entry from an explicit form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, _, err := pipeline()
			if err != nil {
				return err
			}

			form := types.EntryForm{
				Title:       strings.Join(args, " "),
				Type:        types.EntryType(entryType),
				Priority:    types.Priority(priority),
				Location:    location,
				Topic:       topic,
				People:      people,
				Summary:     summary,
				Actionables: actionables,
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid --due %q, want YYYY-MM-DD: %w", due, err)
				}
				form.Due = &d
			}

			entry, err := svc.FromForm(cmd.Context(), form)
			if err != nil {
				return err
			}

			printEntry(entry)
			printTriage(st)
			return nil
		},
	}

	cmd.Flags().StringVar(&entryType, "type", "task", "entry type (site-visit, meeting, audit, voice, task, inspection, report, idea, incident)")
	cmd.Flags().StringVar(&priority, "priority", "P3", "priority P1..P5")
	cmd.Flags().StringVar(&location, "location", "", "location reference")
	cmd.Flags().StringVar(&topic, "topic", "", "main subject or equipment")
	cmd.Flags().StringVar(&people, "people", "", "comma-separated names")
	cmd.Flags().StringVar(&summary, "summary", "", "free-text summary")
	cmd.Flags().StringVar(&actionables, "actionables", "", "newline-separated action items")
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	return cmd
}

func captureCmd() *cobra.Command {
	var (
		mode string
		text string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Simulate a quick capture and extract an entry from it",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, cfg, err := pipeline()
			if err != nil {
				return err
			}

			captureMode := types.CaptureMode(mode)
			if !types.IsValidCaptureMode(captureMode) {
				return fmt.Errorf("invalid --mode %q, want photo, audio, or video", mode)
			}
			if !cfg.Capture.AllowPlaceholder {
				return fmt.Errorf("no capture device available and placeholder captures are disabled")
			}

			// No real device on the command line: synthesize a placeholder
			// artifact and run it through extraction like any capture.
			ctrl := capture.NewController(nil)
			artifact := ctrl.Placeholder(captureMode)

			entry, err := svc.FromCapture(cmd.Context(), types.CaptureInput{
				Artifact: &artifact,
				Mode:     captureMode,
				Text:     text,
			})
			if err != nil {
				return err
			}

			printEntry(entry)
			printTriage(st)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "audio", "capture mode (photo, audio, video)")
	cmd.Flags().StringVar(&text, "text", "", "accompanying text, e.g. a rough transcript")
	return cmd
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed example entries and show the triage view",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, _, err := pipeline()
			if err != nil {
				return err
			}

			seeds := []types.EntryForm{
				{
					Title:       "Nchwaning 3 ventilation audit",
					Type:        types.TypeAudit,
					Priority:    types.PriorityP1,
					Location:    "Nchwaning 3",
					Summary:     "Ventilation flow below threshold in section 12.",
					Actionables: "Re-measure airflow\nEscalate to ventilation engineer",
					People:      "Sipho",
				},
				{
					Title:    "Bearing noise on conveyor 3",
					Type:     types.TypeVoice,
					Priority: types.PriorityP2,
					Topic:    "bearing noise",
					Summary:  "Grinding noise from the head pulley bearing.",
				},
				{
					Title:    "Weekly production meeting",
					Type:     types.TypeMeeting,
					Priority: types.PriorityP3,
					Topic:    "production",
					Summary:  "Standing weekly production review.",
					People:   "Anna, Thabo",
				},
				{
					Title:       "Valve leak at pump station",
					Type:        types.TypeInspection,
					Priority:    types.PriorityP1,
					Topic:       "valve leak",
					Location:    "Pump station",
					Summary:     "Isolation valve weeping at the flange.",
					Actionables: "Order gasket\nSchedule shutdown window",
				},
			}

			for _, form := range seeds {
				if _, err := svc.FromForm(cmd.Context(), form); err != nil {
					return err
				}
			}

			printTriage(st)
			return nil
		},
	}
}

func printEntry(entry types.Entry) {
	fmt.Printf("Created entry %s\n", entry.Slug)
	fmt.Printf("  Title:    %s\n", entry.Title)
	fmt.Printf("  Type:     %s  Priority: %s  Status: %s\n", entry.Type, entry.Priority, entry.Status)
	fmt.Printf("  Summary:  %s\n", entry.Summary)
	for _, a := range entry.Actionables {
		fmt.Printf("  - %s\n", a)
	}
	if len(entry.People) > 0 {
		fmt.Printf("  People:   %s\n", strings.Join(entry.People, ", "))
	}
	if entry.Due != nil {
		fmt.Printf("  Due:      %s\n", entry.Due.Format("2006-01-02"))
	}
	if len(entry.AttachedFiles) > 0 {
		fmt.Printf("  Files:    %s\n", strings.Join(entry.AttachedFiles, ", "))
	}
	fmt.Println()
}

func printTriage(st *store.EntryStore) {
	ranked := triage.Sort(st.All())
	if len(ranked) == 0 {
		fmt.Println("Nothing to triage.")
		return
	}

	fmt.Println("Triage:")
	for i, entry := range ranked {
		due := "-"
		if entry.Due != nil {
			due = entry.Due.Format("2006-01-02")
		}
		fmt.Printf("  %2d. [%s] %-11s due %-10s  %s\n", i+1, entry.Priority, entry.Status, due, entry.Title)
	}
}

package cmd

import (
	"context"
	"fmt"

	"campusevents/internal/domain"

	"github.com/spf13/cobra"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample events into the configured store",
	Long: `Load a small set of sample events into the store selected by STORE_DRIVER.

The store is left untouched when it already holds events, unless --force is given,
in which case the samples are appended with fresh ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		n, err := seedEvents(ctx, a.events, seedForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d events\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "append samples even when the store is not empty")
}

func seedEvents(ctx context.Context, svc domain.EventService, force bool) (int, error) {
	existing, err := svc.ListEvents(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 && !force {
		return 0, nil
	}
	for i, in := range sampleEvents {
		if _, err := svc.CreateEvent(ctx, in); err != nil {
			return i, fmt.Errorf("seed %q: %w", in.Title, err)
		}
	}
	return len(sampleEvents), nil
}

var sampleEvents = []domain.EventInput{
	{Title: "Spring Festival", Description: "Live music, food trucks and club booths across campus", Date: "2025-05-20", Location: "Main Lawn", Category: "Festival"},
	{Title: "Career Fair 2025", Description: "Meet recruiters from over forty companies", Date: "2025-06-03", Location: "Student Union Hall", Category: "Career"},
	{Title: "AI Workshop", Description: "Hands-on introduction to machine learning with Python", Date: "2025-06-12", Location: "Engineering Building 301", Category: "Tech"},
	{Title: "Intramural Soccer Cup", Description: "Department teams compete for the cup", Date: "2025-06-21", Location: "Sports Field", Category: "Sports"},
	{Title: "International Food Night", Description: "Dishes from the international student community", Date: "2025-07-02", Location: "Global Village", Category: "Culture"},
}

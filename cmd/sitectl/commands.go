package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nexvstar/site/internal/content"
	"github.com/nexvstar/site/internal/db"
	"github.com/nexvstar/site/internal/models"
	"github.com/nexvstar/site/internal/notify"
	"github.com/nexvstar/site/internal/site"
	"github.com/nexvstar/site/internal/store/rabbitmq"
	"github.com/nexvstar/site/internal/users"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	adminEmail string
	adminName  string
	requeueMax int
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long: `Create an admin account. The password is read from SITECTL_ADMIN_PASSWORD
so it does not end up in shell history.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password := os.Getenv("SITECTL_ADMIN_PASSWORD")
		if password == "" {
			return errors.New("SITECTL_ADMIN_PASSWORD is not set")
		}
		e, err := open(cmd.Context())
		if err != nil {
			return err
		}
		if err := db.Migrate(e.db); err != nil {
			return err
		}
		u, err := users.NewStore(e.db).Create(cmd.Context(),
			models.Profile{Name: adminName, Email: adminEmail}, password, models.RoleAdmin)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", u.Email, u.ID)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample posts and testimonials into empty tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := open(cmd.Context())
		if err != nil {
			return err
		}
		if err := db.Migrate(e.db); err != nil {
			return err
		}
		ph, err := site.LoadPlaceholders()
		if err != nil {
			return err
		}
		posts, ts, err := seed(cmd.Context(), e.db, ph, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d posts, %d testimonials\n", posts, ts)
		return nil
	},
}

var requeueCmd = &cobra.Command{
	Use:   "requeue-notifications",
	Short: "Republish sales notifications that failed to send",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := open(cmd.Context())
		if err != nil {
			return err
		}
		pub, err := rabbitmq.NewPublisher(e.cfg.RabbitURL, e.cfg.RabbitQueue)
		if err != nil {
			return err
		}
		defer pub.Close()

		n, err := notify.NewQueue(notify.NewRepo(e.db), pub).Requeue(cmd.Context(), requeueMax)
		fmt.Fprintf(cmd.OutOrStdout(), "requeued %d jobs\n", n)
		return err
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	_ = createAdminCmd.MarkFlagRequired("email")

	requeueCmd.Flags().IntVar(&requeueMax, "limit", 100, "max jobs to republish")
}

// seed fills each empty content table with the placeholder set. Tables that
// already hold rows are left alone.
func seed(ctx context.Context, gdb *gorm.DB, ph *site.Placeholders, now time.Time) (posts, testimonials int, err error) {
	repo := content.NewRepo(gdb)

	existing, err := repo.ListPosts(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(existing) == 0 {
		for _, p := range ph.BlogPosts(now) {
			if err := repo.InsertPost(ctx, &p); err != nil {
				return posts, 0, fmt.Errorf("seed post %q: %w", p.Title, err)
			}
			posts++
		}
	}

	ts, err := repo.ListTestimonials(ctx)
	if err != nil {
		return posts, 0, err
	}
	if len(ts) == 0 {
		for _, t := range ph.Testimonials() {
			if err := repo.InsertTestimonial(ctx, &t); err != nil {
				return posts, testimonials, fmt.Errorf("seed testimonial %q: %w", t.ClientName, err)
			}
			testimonials++
		}
	}
	return posts, testimonials, nil
}

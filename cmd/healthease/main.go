// Command healthease manages medical bookings and reminders from the
// terminal, one account at a time, against a configurable blob store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"healthease/internal/auth"
	"healthease/internal/booking"
	"healthease/internal/model"
	"healthease/internal/reminder"
	"healthease/internal/storage"
)

type config struct {
	Backend      string  `env:"HEALTHEASE_BACKEND" envDefault:"sqlite"`
	SQLitePath   string  `env:"HEALTHEASE_DB" envDefault:"healthease.db"`
	PostgresURL  string  `env:"DATABASE_URL"`
	S3Bucket     string  `env:"HEALTHEASE_S3_BUCKET"`
	S3Region     string  `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKey string  `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey string  `env:"AWS_SECRET_ACCESS_KEY"`
	LoginRPS     float64 `env:"HEALTHEASE_LOGIN_RPS" envDefault:"1"`
	LoginBurst   int     `env:"HEALTHEASE_LOGIN_BURST" envDefault:"10"`
}

type app struct {
	dir       *auth.Directory
	bookings  *booking.Ledger
	reminders *reminder.Ledger
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fatal(fmt.Errorf("config: %w", err))
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, storage.Config{
		Backend:     storage.Backend(cfg.Backend),
		SQLitePath:  cfg.SQLitePath,
		PostgresURL: cfg.PostgresURL,
		S3Bucket:    cfg.S3Bucket,
		S3Region:    cfg.S3Region,
		S3AccessKey: cfg.AWSAccessKey,
		S3SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		fatal(fmt.Errorf("storage: %w", err))
	}
	defer backend.Close()

	dir, err := auth.New(ctx, backend, auth.Config{
		LoginRPS:   cfg.LoginRPS,
		LoginBurst: cfg.LoginBurst,
	})
	if err != nil {
		fatal(fmt.Errorf("auth: %w", err))
	}

	a := &app{
		dir:       dir,
		bookings:  booking.New(backend),
		reminders: reminder.New(backend),
	}
	if err := a.run(ctx, args[0], args[1:]); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "healthease:", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: healthease <command> [flags]

commands:
  signup     -first -last -email -password
  login      -email -password
  logout
  whoami
  dashboard
  bookings   [list|upcoming|past] | add -doctor -date -time -category -type | rm -id
  reminders  [list] | add -doctor -due -notes | rm -id

dates are entered as YYYY-MM-DD and times as 24-hour HH:MM.`)
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		if err := a.dir.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	case "whoami":
		u := a.dir.CurrentUser()
		if u == nil {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
		return nil
	case "dashboard":
		return a.dashboard(ctx)
	case "bookings":
		return a.runBookings(ctx, args)
	case "reminders":
		return a.runReminders(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := a.dir.Register(ctx, *first, *last, *email, *password); err != nil {
		return err
	}
	fmt.Printf("registered %s\n", *email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	u, err := a.dir.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	return nil
}

// requireLogin mirrors the app's route guard: everything past the auth
// screens needs an active session.
func (a *app) requireLogin() error {
	if !a.dir.IsAuthenticated() {
		return errors.New("not logged in (run: healthease login)")
	}
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	upcoming, err := a.bookings.Upcoming(ctx)
	if err != nil {
		return err
	}
	reminders, err := a.reminders.List(ctx)
	if err != nil {
		return err
	}

	u := a.dir.CurrentUser()
	fmt.Printf("Welcome back, %s!\n\nUpcoming bookings:\n", u.FirstName)
	printBookings(upcoming)
	fmt.Println("\nReminders:")
	printReminders(reminders)
	return nil
}

func (a *app) runBookings(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		bs, err := a.bookings.List(ctx)
		if err != nil {
			return err
		}
		printBookings(bs)
		return nil
	case "upcoming":
		bs, err := a.bookings.Upcoming(ctx)
		if err != nil {
			return err
		}
		printBookings(bs)
		return nil
	case "past":
		bs, err := a.bookings.Past(ctx)
		if err != nil {
			return err
		}
		printBookings(bs)
		return nil
	case "add":
		fs := flag.NewFlagSet("bookings add", flag.ExitOnError)
		doctor := fs.String("doctor", "", "doctor name")
		date := fs.String("date", "", "date (YYYY-MM-DD)")
		timeOfDay := fs.String("time", "", "time (HH:MM, 24-hour)")
		category := fs.String("category", "", "category")
		visit := fs.String("type", "", "type of visit")
		fs.Parse(args)

		formattedDate, err := booking.FormatDate(*date)
		if err != nil {
			return err
		}
		formattedTime, err := booking.FormatTime(*timeOfDay)
		if err != nil {
			return err
		}
		b, err := a.bookings.Add(ctx, *doctor, formattedDate, formattedTime, *category, *visit)
		if err != nil {
			return err
		}
		fmt.Printf("booked %s with %s at %s (id %d)\n", b.Date, b.DoctorName, b.Time, b.ID)
		return nil
	case "rm":
		fs := flag.NewFlagSet("bookings rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "booking id")
		fs.Parse(args)
		if err := a.bookings.Remove(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("removed booking %d\n", *id)
		return nil
	default:
		return fmt.Errorf("unknown bookings subcommand %q", sub)
	}
}

func (a *app) runReminders(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		rs, err := a.reminders.List(ctx)
		if err != nil {
			return err
		}
		printReminders(rs)
		return nil
	case "add":
		fs := flag.NewFlagSet("reminders add", flag.ExitOnError)
		doctor := fs.String("doctor", "", "doctor name")
		due := fs.String("due", "", "due date (YYYY-MM-DD)")
		notes := fs.String("notes", "", "notes")
		fs.Parse(args)

		dueDate, err := booking.FormatDate(*due)
		if err != nil {
			return err
		}
		r, err := a.reminders.Add(ctx, *doctor, dueDate, *notes)
		if err != nil {
			return err
		}
		fmt.Printf("added reminder %d due %s\n", r.ID, r.DueDate)
		return nil
	case "rm":
		fs := flag.NewFlagSet("reminders rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "reminder id")
		fs.Parse(args)
		if err := a.reminders.Remove(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("removed reminder %d\n", *id)
		return nil
	default:
		return fmt.Errorf("unknown reminders subcommand %q", sub)
	}
}

func printBookings(bs []model.Booking) {
	if len(bs) == 0 {
		fmt.Println("  (none)")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOCTOR\tDATE\tTIME\tCATEGORY\tTYPE")
	for _, b := range bs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.DoctorName, b.Date, b.Time, b.Category, b.TypeOfVisit)
	}
	w.Flush()
}

func printReminders(rs []model.Reminder) {
	if len(rs) == 0 {
		fmt.Println("  (none)")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOCTOR\tDUE\tNOTES")
	for _, r := range rs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.DoctorName, r.DueDate, r.Notes)
	}
	w.Flush()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/api"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/client"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/config"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/guard"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/schedule"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/services/enrollment"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/session"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/store"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"

	"go.uber.org/zap"
)

const usage = `usage: portal <command> [flags]

commands:
  login        -u <username> -p <password>
  logout
  whoami
  refresh
  departments
  schedule
  enroll       -instance <id>
  drop         -instance <id>
  check        -a "星期一 08:00-09:35 全部" -b "星期一 09:00-10:35 单周"
`

// consoleNavigator satisfies the session's navigation capability in a
// terminal context: it just reports where the UI would go.
type consoleNavigator struct {
	logger *zap.Logger
}

func (n consoleNavigator) NavigateTo(path string) {
	n.logger.Info("navigate", zap.String("path", path))
}

func openStore(logger *zap.Logger) store.CredentialStore {
	switch config.AppConfig.StorageBackend {
	case "redis":
		st, err := store.NewRedisStore()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open redis credential store: %v", err)
		}
		return st
	default:
		st, err := store.NewSQLiteStore(config.AppConfig.SQLitePath)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open credential store: %v", err)
		}
		return st
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	st := openStore(logger)
	defer st.Close()

	cli := client.New(config.AppConfig.APIBaseURL, config.AppConfig.RequestTimeout, logger)
	cli.SetRateLimit(config.AppConfig.MaxRequestsPerSec)

	sess, err := session.New(st, cli, consoleNavigator{logger: logger}, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to restore session: %v", err)
	}
	cli.BindSession(sess, sess.HandleUnauthorized)

	if sess.TermID() == 0 {
		if err := sess.SetTermID(config.AppConfig.DefaultTermID); err != nil {
			logger.Warn("persisting default term failed", zap.Error(err))
		}
	}

	portal := api.New(cli)
	enrollSvc := &enrollment.Service{API: portal, Logger: logger}

	ctx := context.Background()
	if err := run(ctx, os.Args[1], os.Args[2:], sess, portal, enrollSvc); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, sess *session.Machine, portal *api.API, enrollSvc *enrollment.Service) error {
	switch command {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("u", "", "username (student or staff id)")
		password := fs.String("p", "", "password")
		fs.Parse(args)
		profile, err := sess.Login(ctx, *username, *password)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) logged in, landing page %s\n",
			profile.Name, profile.Role, guard.LandingPage(models.ParseRole(profile.Role)))
		return nil

	case "logout":
		sess.Logout()
		fmt.Println("logged out")
		return nil

	case "whoami":
		facts := sess.Facts()
		if !facts.LoggedIn {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s, role %s, user id %d, term %d\n",
			facts.DisplayName, facts.Role, facts.UserID, sess.TermID())
		return nil

	case "refresh":
		if !sess.Refresh(ctx) {
			return fmt.Errorf("refresh failed, please log in again")
		}
		fmt.Println("session refreshed")
		return nil

	case "departments":
		departments, err := portal.GetDepartments(ctx)
		if err != nil {
			return err
		}
		for _, d := range departments {
			fmt.Printf("%d\t%s\n", d.DepartmentID, d.DepartmentName)
		}
		return nil

	case "schedule":
		facts := sess.Facts()
		if !facts.LoggedIn {
			return fmt.Errorf("please log in first")
		}
		var entries []models.ScheduleEntry
		var err error
		switch facts.Role {
		case models.RoleTeacher:
			entries, err = portal.GetTeacherSchedule(ctx, facts.UserID, sess.TermID())
		default:
			entries, err = portal.GetStudentSchedule(ctx, facts.UserID, sess.TermID())
		}
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s %s-%s\t%s\t%s%s\n",
				e.CourseName, e.Weekday, e.StartTime, e.EndTime, e.WeekType, e.Building, e.Room)
		}
		return nil

	case "enroll":
		fs := flag.NewFlagSet("enroll", flag.ExitOnError)
		instanceID := fs.Int("instance", 0, "course offering instance id")
		fs.Parse(args)
		facts := sess.Facts()
		if !facts.LoggedIn {
			return fmt.Errorf("please log in first")
		}
		courses, err := portal.GetAvailableCourses(ctx, facts.UserID)
		if err != nil {
			return err
		}
		for _, c := range courses {
			if c.InstanceID == *instanceID {
				if err := enrollSvc.Enroll(ctx, facts.UserID, sess.TermID(), c); err != nil {
					return err
				}
				fmt.Printf("enrolled in %s\n", c.CourseName)
				return nil
			}
		}
		return fmt.Errorf("instance %d is not available for enrollment", *instanceID)

	case "drop":
		fs := flag.NewFlagSet("drop", flag.ExitOnError)
		instanceID := fs.Int("instance", 0, "course offering instance id")
		fs.Parse(args)
		facts := sess.Facts()
		if !facts.LoggedIn {
			return fmt.Errorf("please log in first")
		}
		return enrollSvc.Drop(ctx, facts.UserID, *instanceID)

	case "check":
		fs := flag.NewFlagSet("check", flag.ExitOnError)
		a := fs.String("a", "", `first meeting, e.g. "星期一 08:00-09:35 全部"`)
		b := fs.String("b", "", `second meeting, e.g. "星期一 09:00-10:35 单周"`)
		fs.Parse(args)
		x, err := parseMeeting(*a)
		if err != nil {
			return err
		}
		y, err := parseMeeting(*b)
		if err != nil {
			return err
		}
		if schedule.Conflicts(x, y) {
			fmt.Println("conflict")
		} else {
			fmt.Println("no conflict")
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// parseMeeting reads "<weekday> <start>-<end> [<week type>]".
func parseMeeting(s string) (models.ScheduledSession, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return models.ScheduledSession{}, fmt.Errorf("malformed meeting %q", s)
	}
	weekday, err := schedule.ParseWeekday(fields[0])
	if err != nil {
		return models.ScheduledSession{}, err
	}
	interval, err := schedule.ParseTimeRange(fields[1])
	if err != nil {
		return models.ScheduledSession{}, err
	}
	parity := models.WeekAll
	if len(fields) > 2 {
		parity = schedule.ParseParity(fields[2])
	}
	return models.ScheduledSession{Weekday: weekday, Interval: interval, Parity: parity}, nil
}

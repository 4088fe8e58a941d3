package notify

import (
	"fmt"
	"os"
	"time"

	"github.com/enescakir/emoji"
	"github.com/fatih/color"
	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
	"github.com/gimlet-io/rocketchat-notifier/pkg/notifications"
	"github.com/gimlet-io/rocketchat-notifier/pkg/testreport"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var Command = cli.Command{
	Name:  "notify",
	Usage: "Notifies a Rocket.Chat channel about a finished build",
	UsageText: `rocketchat-notifier notify
     --webhook-url https://chat.mycompany.com/hooks/xxx/yyy
     --project my-app
     --number 42
     --url https://ci.mycompany.com/job/my-app/42
     --result FAILURE
     --previous-result SUCCESS
     --junit "build/test-results/**/*.xml"`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "webhook-url",
			Usage:    "Rocket.Chat incoming webhook URL, WEBHOOK_URL environment variable alternatively",
			EnvVars:  []string{"WEBHOOK_URL"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "channel",
			Usage:   "Channel to post to, the webhook's default channel if not set",
			EnvVars: []string{"CHANNEL"},
		},
		&cli.StringFlag{
			Name:     "project",
			Usage:    "Name of the built project, JOB_NAME environment variable alternatively",
			EnvVars:  []string{"JOB_NAME"},
			Required: true,
		},
		&cli.IntFlag{
			Name:     "number",
			Usage:    "Build number, BUILD_NUMBER environment variable alternatively",
			EnvVars:  []string{"BUILD_NUMBER"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "url",
			Usage:   "Build URL, BUILD_URL environment variable alternatively",
			EnvVars: []string{"BUILD_URL"},
		},
		&cli.StringFlag{
			Name:     "result",
			Usage:    "Build result: SUCCESS, FAILURE or UNSTABLE. Anything else is treated as unknown",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "previous-result",
			Usage: "Result of the previous build. Omit it for the first build of a project",
		},
		&cli.BoolFlag{
			Name:    "notify-back-to-normal-only",
			Usage:   "Do not notify about successful builds unless they fix a failed or unstable one",
			EnvVars: []string{"NOTIFY_BACK_TO_NORMAL_ONLY"},
		},
		&cli.BoolFlag{
			Name:    "show-test-summary",
			Usage:   "Attach a test summary to the message",
			EnvVars: []string{"SHOW_TEST_SUMMARY"},
		},
		&cli.StringSliceFlag{
			Name:  "junit",
			Usage: "JUnit XML report files or glob patterns to count tests from",
		},
		&cli.IntFlag{
			Name:  "tests-total",
			Usage: "Total number of tests, if no JUnit report is given",
		},
		&cli.IntFlag{
			Name:  "tests-failed",
			Usage: "Number of failed tests",
		},
		&cli.IntFlag{
			Name:  "tests-skipped",
			Usage: "Number of skipped tests",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout of the webhook call",
			Value: 10 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "fail-on-error",
			Usage: "Exit with an error if the notification could not be delivered",
		},
	},
	Action: notify,
}

func notify(c *cli.Context) error {
	record, err := recordFromFlags(c)
	if err != nil {
		return err
	}

	settings := notifications.Settings{
		WebhookURL:             c.String("webhook-url"),
		Channel:                c.String("channel"),
		NotifyBackToNormalOnly: c.Bool("notify-back-to-normal-only"),
		ShowTestSummary:        c.Bool("show-test-summary"),
	}

	fmt.Fprintf(os.Stderr, "%v Notifying Rocket.Chat\n", emoji.HourglassNotDone)

	publisher := notifications.NewPublisher(notifications.NewRocketChatProvider(c.Duration("timeout")))
	result := publisher.Publish(c.Context, record, settings)

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	switch result.Status {
	case model.StatusDelivered:
		fmt.Fprintf(os.Stderr, "%v %s %s\n", emoji.CheckMark, green("Notified"), result.Payload.Text)
	case model.StatusSkipped:
		fmt.Fprintf(os.Stderr, "%v %s\n", emoji.CheckMark, gray("Nothing to notify about"))
	case model.StatusFailed:
		fmt.Fprintf(os.Stderr, "%v %s %s\n", emoji.CrossMark, red("Failed to notify Rocket.Chat:"), result.Err)
		if c.Bool("fail-on-error") {
			return result.Err
		}
	}

	return nil
}

func recordFromFlags(c *cli.Context) (model.Record, error) {
	record := model.Record{
		Outcome:     model.ParseOutcome(c.String("result")),
		ProjectName: c.String("project"),
		BuildNumber: c.Int("number"),
		BuildURL:    c.String("url"),
	}

	if c.IsSet("previous-result") {
		previous := model.ParseOutcome(c.String("previous-result"))
		record.PreviousOutcome = &previous
	}

	if patterns := c.StringSlice("junit"); len(patterns) > 0 {
		// builds that break before their tests run have no reports,
		// they still get notified, just without a test summary
		counts, err := testreport.ParseFiles(patterns...)
		if err != nil {
			logrus.Warnf("no test summary: %s", err)
		} else {
			record.TestCounts = counts
		}
	} else if c.IsSet("tests-total") {
		record.TestCounts = &model.TestCounts{
			Total:   c.Int("tests-total"),
			Failed:  c.Int("tests-failed"),
			Skipped: c.Int("tests-skipped"),
		}
	}

	return record, record.Validate()
}

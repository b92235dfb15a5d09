package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mlo-prep/backend/internal/domain/questionbank"
	"github.com/mlo-prep/backend/internal/service"
)

const maxAttempts = 3

// Run plays one session of mode on in/out. Closing the input or cancelling
// ctx ends the run early; persisted modes pick up where they left off on the
// next run. A cancelled run returns ctx.Err().
func Run(ctx context.Context, quiz *service.QuizService, mode string, in io.Reader, out io.Writer) error {
	ls, err := quiz.StartSession(ctx, mode)
	if err != nil {
		return err
	}
	session := ls.Session

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(ctx, in)

	fmt.Fprintf(out, "%s: %d questions\n", ls.Mode.Label, session.Total())
	if session.Resumed() {
		fmt.Fprintf(out, "Resuming at question %d/%d\n", session.Index()+1, session.Total())
	}

	for {
		question, ok := session.Current()
		if !ok {
			break
		}
		if ls.Mode.Config.Timed {
			fmt.Fprintf(out, "\nTime left: %s\n", formatRemaining(session.TimeRemaining()))
		}
		printQuestion(out, session.Index()+1, session.Total(), question)

		choice, status := getAnswer(ctx, lines, out, len(question.Choices))
		fmt.Fprintln(out)
		switch status {
		case inputCancelled:
			printProgress(out, ls)
			return ctx.Err()
		case inputClosed:
			printProgress(out, ls)
			return nil
		}
		if status == inputInvalid {
			fmt.Fprintf(out, "Skipping. Correct answer was %s\n", optionText(question, question.AnswerIndex))
		} else {
			res, accepted, err := quiz.Answer(session.ID, choice)
			switch {
			case errors.Is(err, service.ErrSessionFinished):
				// the timer ended the session while waiting for input
			case err != nil:
				return err
			case accepted:
				printFeedback(out, question, res.Correct)
			}
		}

		if _, err := quiz.Next(session.ID); err != nil {
			return err
		}
	}

	if ls.Expired() {
		fmt.Fprintln(out, "\nTime's up!")
	}
	correct, total := session.Score()
	fmt.Fprintf(out, "\nFinal score: %d/%d\n", correct, total)
	if ls.Mode.Config.PersistKey != "" {
		fmt.Fprintln(out, "Run with -reset to start a new attempt.")
	}
	return nil
}

func printQuestion(out io.Writer, number, total int, q questionbank.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d/%d [%s]: %s\n", number, total, q.Category, q.Prompt)
	if q.Stem != "" {
		fmt.Fprintln(out, q.Stem)
	}
	fmt.Fprintln(out)
	for i, c := range q.Choices {
		fmt.Fprintf(out, "%c. %s\n", 'A'+i, c)
	}
	fmt.Fprintln(out)
}

func printFeedback(out io.Writer, q questionbank.Question, correct bool) {
	if correct {
		fmt.Fprintln(out, "Correct!")
	} else {
		fmt.Fprintf(out, "Wrong. Correct answer was %s\n", optionText(q, q.AnswerIndex))
	}
	if q.Explanation != "" {
		fmt.Fprintln(out, q.Explanation)
	}
}

func printProgress(out io.Writer, ls *service.LiveSession) {
	correct, _ := ls.Session.Score()
	fmt.Fprintf(out, "Stopped at question %d/%d with %d correct.\n",
		ls.Session.Index()+1, ls.Session.Total(), correct)
	if ls.Mode.Config.PersistKey != "" {
		fmt.Fprintln(out, "Progress saved.")
	}
}

type inputStatus int

const (
	inputAnswered inputStatus = iota
	inputInvalid
	inputClosed
	inputCancelled
)

// readLines feeds lines from in to the returned channel until in fails or
// ctx is done. The channel is closed when reading stops.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// getAnswer waits for a letter answer, allowing maxAttempts tries.
func getAnswer(ctx context.Context, lines <-chan string, out io.Writer, optionCount int) (int, inputStatus) {
	if optionCount < 1 {
		return -1, inputInvalid
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var userAnswer string
		select {
		case <-ctx.Done():
			return -1, inputCancelled
		case line, ok := <-lines:
			if !ok {
				return -1, inputClosed
			}
			userAnswer = line
		}

		userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), inputAnswered
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return -1, inputInvalid
}

func optionText(q questionbank.Question, index int) string {
	if index < 0 || index >= len(q.Choices) {
		return ""
	}
	return fmt.Sprintf("%c. %s", 'A'+index, q.Choices[index])
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}

package guard

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
)

type matchEvent struct {
	mode   Mode
	branch int
}

type HooksSuite struct {
	suite.Suite

	matches   []matchEvent
	noMatches []Mode
	errs      []error
	opts      []Option
}

func TestHooksSuite(t *testing.T) {
	suite.Run(t, new(HooksSuite))
}

func (s *HooksSuite) SetupTest() {
	s.matches, s.noMatches, s.errs = nil, nil, nil
	s.opts = []Option{
		WithOnMatch(func(mode Mode, branch int, _ any) {
			s.matches = append(s.matches, matchEvent{mode, branch})
		}),
		WithOnNoMatch(func(mode Mode, _ any) {
			s.noMatches = append(s.noMatches, mode)
		}),
		WithOnError(func(_ Mode, err error) {
			s.errs = append(s.errs, err)
		}),
	}
}

func (s *HooksSuite) TestExecuteReportsSelectedBranch() {
	Match[string](10, s.opts...).With(7, "a").With(10, "b").With(10, "c").Execute()

	s.Equal([]matchEvent{{ModeExecute, 1}}, s.matches)
	s.Empty(s.noMatches)
}

func (s *HooksSuite) TestOtherwiseReportsNoMatch() {
	Match[string]("x", s.opts...).With("y", "a").Otherwise("default")

	s.Empty(s.matches)
	s.Equal([]Mode{ModeOtherwise}, s.noMatches)
}

func (s *HooksSuite) TestExhaustiveReportsEveryMatch() {
	When(5, s.opts...).Is(5, nil).Is(isPositive, nil).Is(-5, nil).Exhaustive()

	s.Equal([]matchEvent{{ModeExhaustive, 0}, {ModeExhaustive, 1}}, s.matches)
}

func (s *HooksSuite) TestLazyReportsFirstMatch() {
	When(5, s.opts...).Is(5, nil).Is(isPositive, nil).Lazy()

	s.Equal([]matchEvent{{ModeLazy, 0}}, s.matches)
}

func (s *HooksSuite) TestConcurrentReportsAfterSettling() {
	_, _, err := MatchAsync[string](2, s.opts...).
		With(-1, "neg").
		With(isPositive, "pos").
		With(2, "two").
		Concurrent(context.Background())

	s.Require().NoError(err)
	s.Equal([]matchEvent{{ModeConcurrent, 1}}, s.matches)
}

func (s *HooksSuite) TestConcurrentWhenReportsAllMatches() {
	_, err := WhenAsync(2, s.opts...).
		Is(2, nil).
		Is(-2, nil).
		Is(isPositive, nil).
		Concurrent(context.Background())

	s.Require().NoError(err)
	s.Equal([]matchEvent{{ModeConcurrent, 0}, {ModeConcurrent, 2}}, s.matches)
}

func (s *HooksSuite) TestErrorHookReceivesReturnedError() {
	_, _, err := MatchAsync[string](1, s.opts...).With(asyncFail(errBoom), "a").Execute(context.Background())

	s.ErrorIs(err, errBoom)
	s.Equal([]error{errBoom}, s.errs)
}

func (s *HooksSuite) TestMultipleHooksRunInOrder() {
	var order []string
	Match[int](1,
		WithOnMatch(func(Mode, int, any) { order = append(order, "first") }),
		WithOnMatch(func(Mode, int, any) { order = append(order, "second") }),
	).With(1, 1).Execute()

	s.Equal([]string{"first", "second"}, order)
}

func (s *HooksSuite) TestWithLogger() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Match[string](3, WithLogger(logger)).With(3, "three").Execute()
	s.Contains(buf.String(), "guard matched")
	s.Contains(buf.String(), "mode=execute")
	s.Contains(buf.String(), "branch=0")
	s.Contains(buf.String(), "subject_type=int")

	buf.Reset()
	When("x", WithLogger(logger)).Is("y", nil).Lazy()
	s.Contains(buf.String(), "guard unmatched")

	buf.Reset()
	_, _ = WhenAsync(1, WithLogger(logger)).Is(asyncFail(errBoom), nil).Lazy(context.Background())
	s.Contains(buf.String(), "level=ERROR")
	s.Contains(buf.String(), "error=boom")
}

func (s *HooksSuite) TestNilLoggerIsIgnored() {
	s.NotPanics(func() {
		Match[string](3, WithLogger(nil)).With(3, "three").Execute()
	})
}

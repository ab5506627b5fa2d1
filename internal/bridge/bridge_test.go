package bridge_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/amstokely/fortest/internal/bridge"
	"github.com/amstokely/fortest/internal/config"
	"github.com/amstokely/fortest/internal/fixture"
	"github.com/amstokely/fortest/internal/report"
	"github.com/amstokely/fortest/internal/runner"
	"github.com/amstokely/fortest/internal/store"
	"github.com/amstokely/fortest/internal/testutil"
)

var _ = Describe("Context", func() {
	var (
		ctx        *bridge.Context
		rec        *report.Recorder
		errOut     *bytes.Buffer
		terminated []int
	)

	newContext := func(opts ...bridge.Option) *bridge.Context {
		base := []bridge.Option{
			bridge.WithReporter(rec),
			bridge.WithErrorOutput(errOut),
			bridge.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			bridge.WithTerminate(func(code int) { terminated = append(terminated, code) }),
		}
		return bridge.New(append(base, opts...)...)
	}

	BeforeEach(func() {
		rec = report.NewRecorder()
		errOut = &bytes.Buffer{}
		terminated = nil
		ctx = newContext()
	})

	// =========================================================================
	// Registration and runs through the entry points
	// =========================================================================
	Describe("a full session", func() {
		It("runs registered tests and reports suite status", func() {
			ctx.RegisterSuite("math")
			ctx.RegisterSuite("strings")

			ctx.RegisterTest("math", "adds", func(_, _, _ fixture.Handle) error {
				ctx.AssertEqualInt(4, 2+2, 1)
				return nil
			})
			ctx.RegisterTest("strings", "compares", func(_, _, _ fixture.Handle) error {
				ctx.AssertEqualString("abc", "abd", 1)
				return nil
			})

			ctx.RunSession()

			Expect(terminated).To(BeEmpty())
			Expect(ctx.SuiteStatus("math")).To(Equal(0))
			Expect(ctx.SuiteStatus("strings")).To(Equal(1))
			Expect(rec.Contains("Starting test session")).To(BeTrue())
			Expect(rec.Contains("Summary: 2 suites, 2 tests, 1 passed, 1 failed, 0 not run")).To(BeTrue())
		})

		It("delivers fixture args to test bodies", func() {
			counter := 0
			args := fixture.NewHandle(&counter)

			ctx.RegisterSuite("fixtures")
			ctx.RegisterFixture("", func(h fixture.Handle) error {
				p, _ := fixture.As[*int](h)
				*p = 10
				return nil
			}, nil, args, "session")
			ctx.RegisterFixture("fixtures", func(h fixture.Handle) error {
				p, _ := fixture.As[*int](h)
				*p++
				return nil
			}, nil, args, "test")

			var sessionSeen int
			ctx.RegisterParameterizedTest("fixtures", "grid", func(tst, _, ses fixture.Handle, idx int) error {
				p, _ := fixture.As[*int](ses)
				sessionSeen = *p
				ctx.AssertTrue(idx > 0, 0)
				return nil
			}, []int{1, 2})

			ctx.RunSession()

			Expect(terminated).To(BeEmpty())
			Expect(sessionSeen).To(Equal(12))
			Expect(ctx.SuiteStatus("fixtures")).To(Equal(0))
		})

		It("matches names regardless of Unicode normalisation", func() {
			composed := "caf\u00e9"
			decomposed := "cafe\u0301"

			ctx.RegisterSuite(decomposed)
			ctx.RegisterTest(composed, "t", func(_, _, _ fixture.Handle) error {
				ctx.AssertFalse(true, 0)
				return nil
			})
			ctx.RunSession()

			Expect(terminated).To(BeEmpty())
			Expect(ctx.SuiteStatus(composed)).To(Equal(1))
		})
	})

	// =========================================================================
	// Fatal handling: message plus exactly one terminate call
	// =========================================================================
	Describe("fatal errors", func() {
		expectFatal := func(entry, fragment string) {
			Expect(terminated).To(Equal([]int{bridge.FatalExitCode}))
			Expect(errOut.String()).To(HavePrefix("[FORTEST FATAL] Exception in " + entry + ": "))
			Expect(errOut.String()).To(ContainSubstring(fragment))
		}

		It("rejects an unknown scope name", func() {
			ctx.RegisterSuite("s")
			ctx.RegisterFixture("s", nil, nil, fixture.Handle{}, "module")
			expectFatal(bridge.EntryRegisterFixture, "module")
		})

		It("rejects an empty suite name with a non-session scope", func() {
			ctx.RegisterFixture("", nil, nil, fixture.Handle{}, "suite")
			expectFatal(bridge.EntryRegisterFixture, "INVALID_SCOPE")
		})

		It("rejects a session scope on a named suite", func() {
			ctx.RegisterSuite("s")
			ctx.RegisterFixture("s", nil, nil, fixture.Handle{}, "session")
			expectFatal(bridge.EntryRegisterFixture, "INVALID_SCOPE")
		})

		It("rejects a duplicate suite", func() {
			ctx.RegisterSuite("dup")
			ctx.RegisterSuite("dup")
			expectFatal(bridge.EntryRegisterSuite, "DUPLICATE_SUITE")
		})

		It("rejects tests for an unknown suite", func() {
			ctx.RegisterTest("missing", "t", func(_, _, _ fixture.Handle) error { return nil })
			expectFatal(bridge.EntryRegisterTest, "UNKNOWN_SUITE")
		})

		It("rejects a status query for an unknown suite", func() {
			Expect(ctx.SuiteStatus("missing")).To(Equal(0))
			expectFatal(bridge.EntrySuiteStatus, "UNKNOWN_SUITE")
		})

		It("terminates when a test body returns an error", func() {
			ctx.RegisterSuite("s")
			ctx.RegisterTest("s", "broken", func(_, _, _ fixture.Handle) error {
				return errors.New("matrix is singular")
			})
			ctx.RunSession()
			expectFatal(bridge.EntryRunSession, "matrix is singular")
			Expect(rec.Contains("Finished test session")).To(BeFalse())
		})

		It("terminates when a test body panics", func() {
			ctx.RegisterSuite("s")
			ctx.RegisterTest("s", "panics", func(_, _, _ fixture.Handle) error {
				panic("nil dereference")
			})
			ctx.RunSession()
			expectFatal(bridge.EntryRunSession, "nil dereference")
		})
	})

	// =========================================================================
	// Assertion entry points
	// =========================================================================
	Describe("assertions", func() {
		It("counts passes and failures on the shared engine", func() {
			ctx.AssertTrue(true, 0)
			ctx.AssertEqualDouble(1.0, 1.0+1e-12, 1e-9, 0, 0)
			ctx.AssertEqualFloat(1.0, 1.5, 0, 0, 0)
			ctx.AssertNotEqualInt(1, 2, 0)
			ctx.AssertNotEqualDouble(1.0, 2.0, 0, 0, 0)
			ctx.AssertNotEqualFloat(1.0, 1.0, 0, 0, 0)
			ctx.AssertNotEqualString("a", "b", 0)

			counts := ctx.Engine().Counts()
			Expect(counts.Passed).To(Equal(5))
			Expect(counts.Failed).To(Equal(2))
			Expect(rec.Entries()).To(BeEmpty())
		})

		It("honours the per-call verbosity", func() {
			ctx.AssertTrue(true, 2)
			ctx.AssertTrue(false, 1)
			ctx.AssertTrue(false, 0)

			passed, failed := rec.Summary()
			Expect(passed).To(Equal(1))
			Expect(failed).To(Equal(1))
		})
	})

	// =========================================================================
	// Persistence configured through the context
	// =========================================================================
	Describe("results database", func() {
		It("writes one row per executed test", func() {
			dbPath := filepath.Join(GinkgoT().TempDir(), "results.db")
			cfg := config.Default()
			cfg.ResultsDB = dbPath

			ctx = newContext(
				bridge.WithConfig(cfg),
				bridge.WithRunnerOptions(runner.WithRunIDs(testutil.NewFixedRunIDs("run-bridge").Next)),
			)
			ctx.RegisterSuite("persisted")
			ctx.RegisterTest("persisted", "ok", func(_, _, _ fixture.Handle) error { return nil })
			ctx.RegisterTest("persisted", "bad", func(_, _, _ fixture.Handle) error {
				ctx.AssertTrue(false, 0)
				return nil
			})
			ctx.RunSession()
			Expect(terminated).To(BeEmpty())

			st, err := store.Open(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer st.Close()

			rows, err := st.ReadResults(context.Background(), "run-bridge")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Test).To(Equal("ok"))
			Expect(rows[0].Status).To(Equal(store.StatusPass))
			Expect(rows[1].Test).To(Equal("bad"))
			Expect(rows[1].Status).To(Equal(store.StatusFail))
		})
	})

	Describe("Default", func() {
		It("returns the same context every time", func() {
			Expect(bridge.Default()).To(BeIdenticalTo(bridge.Default()))
		})
	})
})

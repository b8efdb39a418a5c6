package emitter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// lcpObserver is injected into every page before navigation. It records the
// latest largest-contentful-paint entry and stops observing once the page is
// hidden.
const lcpObserver = `function getLargestContentfulPaint() {
  window.largestContentfulPaint = 0;

  const observer = new PerformanceObserver((list) => {
    const entries = list.getEntries();
    const lastEntry = entries[entries.length - 1];
    window.largestContentfulPaint = lastEntry.renderTime || lastEntry.loadTime;
  });

  observer.observe({ type: 'largest-contentful-paint', buffered: true });

  document.addEventListener('visibilitychange', () => {
    if (document.visibilityState === 'hidden') {
      observer.takeRecords();
      observer.disconnect();
    }
  });
}
`

// PuppeteerFamily generates browser paint-timing tests
type PuppeteerFamily struct{}

func (f *PuppeteerFamily) Category() testcase.Category { return testcase.CategoryPuppeteer }

// EmitImports replaces the buffer with the puppeteer import and the LCP
// observer on every paint-timing statement
func (f *PuppeteerFamily) EmitImports(ctx *Context, buf *Buffer) error {
	for _, st := range ctx.Model.Puppeteer.PuppeteerStatements {
		switch st.Type {
		case testcase.PuppeteerPaintTiming:
			buf.Replace(Fragment("import puppeteer from 'puppeteer';\n\n" + lcpObserver))
		default:
			skipUnknown(testcase.CategoryPuppeteer, st.ID, string(st.Type))
		}
	}
	buf.Append("\n")
	return nil
}

// EmitBody writes one describe block per paint-timing statement
func (f *PuppeteerFamily) EmitBody(ctx *Context, buf *Buffer) error {
	for _, st := range ctx.Model.Puppeteer.PuppeteerStatements {
		switch st.Type {
		case testcase.PuppeteerPaintTiming:
			opts, err := LaunchOptions(st.BrowserOptions)
			if err != nil {
				return fmt.Errorf("puppeteer statement %s: %w", st.ID, err)
			}
			buf.Append(paintTimingBody(st, opts))
		default:
			skipUnknown(testcase.CategoryPuppeteer, st.ID, string(st.Type))
		}
	}
	return nil
}

func paintTimingBody(st testcase.PuppeteerStatement, launchOptions string) Fragment {
	return Fragment(fmt.Sprintf(`describe('%s', () => {
  let paints, lcp;

  beforeAll(async () => {
    let app = '%s';
    let browser = await puppeteer.launch(%s);
    const page = await browser.newPage();
    await page.target().createCDPSession();
    await page.evaluateOnNewDocument(getLargestContentfulPaint);
    await page.goto(app);

    lcp = await page.evaluate(() => window.largestContentfulPaint);

    paints = await page.evaluate(_ => {
      const result = {};
      performance.getEntriesByType('paint').map(entry => {
        result[entry.name] = entry.startTime;
      });
      return result;
    });
    await browser.close();
  });

  it('%s', async () => {
    expect(paints['first-paint']).toBeLessThan(%s);
  });
  it('%s', async () => {
    expect(paints['first-contentful-paint']).toBeLessThan(%s);
  });
  it('%s', async () => {
    expect(lcp).toBeLessThan(%s);
  });
});

`, st.Describe, st.URL, launchOptions,
		st.FirstPaintIt, st.FirstPaintTime,
		st.FCPIt, st.FCPTime,
		st.LCPIt, st.LCPTime))
}

// CoerceOption converts an option value typed in the editor to the value
// passed to puppeteer.launch: "true" and "false" become booleans, numeric
// text becomes a number, anything else stays a string.
func CoerceOption(v testcase.Snippet) any {
	s := string(v)
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

// LaunchOptions serializes browser options as an object literal with bare
// keys. Later options override earlier ones with the same key but keep the
// first key's position. The options themselves are not modified.
func LaunchOptions(opts []testcase.BrowserOption) (string, error) {
	if len(opts) == 0 {
		return "{}", nil
	}

	keys := make([]string, 0, len(opts))
	values := make(map[string]any, len(opts))
	for _, o := range opts {
		if _, ok := values[o.OptionKey]; !ok {
			keys = append(keys, o.OptionKey)
		}
		values[o.OptionKey] = CoerceOption(o.OptionValue)
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		data, err := json.Marshal(values[k])
		if err != nil {
			return "", fmt.Errorf("failed to encode option %s: %w", k, err)
		}
		parts = append(parts, k+":"+string(data))
	}

	return "{" + strings.Join(parts, ",") + "}", nil
}

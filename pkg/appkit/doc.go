/*
Package appkit provides the client application runtime for the velodash
cycling dashboard: an event bus, a reactive state store, a TTL cache,
and a page router, wired together behind a single App value.

# Overview

appkit is the coordination layer under a single-page dashboard UI. Page
modules register with the router; the router drives their lifecycle and
announces transitions on the event bus; shared application state lives
in the state store, which notifies subscribers and mirrors every change
onto the bus; fetched API data is memoized in the TTL cache. An optional
storage backend persists state snapshots across restarts the way the
browser's local storage does.

# Basic Usage

Construct an App, register pages, and start it:

	app := appkit.New(
	    appkit.WithLogger(logger),
	    appkit.WithDefaultPage("overview"),
	)

	app.RegisterPage("overview", overviewPage)
	app.RegisterPage("settings", settingsPage)

	if err := app.Start(ctx); err != nil {
	    log.Fatal(err)
	}
	defer app.Close(ctx)

Start installs the history handler, navigates to the initial page
(deep link if the history carries one, the default page otherwise), and
emits router:ready.

# Components

Each component is usable on its own; the subpackages carry the full
API:

  - event: priority-ordered publish/subscribe bus with emission history
  - state: dot-path reactive state store
  - router: page lifecycle state machine
  - cache: TTL cache with glob invalidation
  - store: durable snapshot storage (memory or SQLite)
  - config: typed settings extraction from YAML/JSON

# Observability

Metrics and traces are opt-in via OpenTelemetry:

	app := appkit.New(
	    appkit.WithMetrics(observability.NewMetricsRecorder()),
	    appkit.WithSpans(observability.NewSpanManager()),
	)

Without them the runtime records nothing and pays no overhead.
*/
package appkit

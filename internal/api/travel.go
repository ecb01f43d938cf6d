package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/reneeli0223/Flight-Scheduler/internal/travel"
)

// TravelHandler handles GET /api/v1/travel?from=&to=&by=&n=.
//
// by selects the ranking criterion (cost, duration, stopovers, layover,
// flight_time); omitted means the default duration ordering, where n
// picks the n-th path, clamped to the last. Successful results are
// cached per query; the cache is flushed on every mutation.
func TravelHandler(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		if from == "" || to == "" {
			respondWithError(w, http.StatusBadRequest, "from and to query parameters are required")
			return
		}

		criterion := travel.ByDefault
		by := r.URL.Query().Get("by")
		if by != "" {
			c, err := travel.ParseCriterion(by)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			criterion = c
		} else {
			by = "sort"
		}
		nth := 0
		if qs := r.URL.Query().Get("n"); qs != "" {
			n, err := strconv.Atoi(qs)
			if err != nil || n < 0 {
				respondWithError(w, http.StatusBadRequest, "invalid path index")
				return
			}
			nth = n
		}

		key := fmt.Sprintf("travel:%s:%s:%s:%d", strings.ToLower(from), strings.ToLower(to), by, nth)
		if cached, found := deps.Cache.Get(key); found {
			deps.Metrics.RouteSearchesTotal.WithLabelValues(by, "hit").Inc()
			dto := cached.(PathDTO)
			respondWithSuccess(w, http.StatusOK, &dto)
			return
		}
		deps.Metrics.RouteSearchesTotal.WithLabelValues(by, "miss").Inc()

		var (
			missing string
			dto     *PathDTO
		)
		deps.read(func() {
			start := deps.Net.FindLocation(from)
			if start == nil {
				missing = "starting location not found"
				return
			}
			end := deps.Net.FindLocation(to)
			if end == nil {
				missing = "ending location not found"
				return
			}
			began := time.Now()
			path, ok := travel.Find(deps.Net, start, end, criterion, nth)
			deps.Metrics.RouteSearchDuration.Observe(time.Since(began).Seconds())
			if !ok {
				return
			}
			p := toPathDTO(path)
			dto = &p
		})

		switch {
		case missing != "":
			respondWithError(w, http.StatusNotFound, missing)
		case dto == nil:
			// "No route within the hop bound" is an empty outcome, not
			// a server error, and is never cached.
			respondWithError(w, http.StatusNotFound,
				fmt.Sprintf("no flights with 3 or less stopovers are available from %s to %s", from, to))
		default:
			deps.Cache.Set(key, *dto, travelCacheTTL)
			respondWithSuccess(w, http.StatusOK, dto)
		}
	}
}

package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
}

// force timezone to be JST because review dates on the site are
// Japan-local, and comparing them against a cutoff computed in the
// server's local zone can shift the boundary by up to a day.
func Now() time.Time {
	return time.Now().In(Location)
}

// ReviewCutoff is the oldest date for which reviews are in scope,
// measured from `now`. Matches the site's two-year relevance window.
func ReviewCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -2*365)
}

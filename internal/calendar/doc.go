// Package calendar holds the timezone-naive date arithmetic behind the graph:
// civil dates, week alignment, month stepping and the trailing one-year window.
//
// All arithmetic is done on civil.Date values, so DST transitions and the
// server's own timezone never shift a day. The only place a time.Location is
// consulted is Today, which turns an instant into the caller's calendar date.
package calendar

// Package calendar exports normalized events as an iCalendar (.ics) feed.
// Only dated events are rendered; dateless events are excluded rather than
// given a placeholder date.
package calendar

package domain

// TrackMetadata contains information about the currently playing track.
// A nil *TrackMetadata means nothing is playing; a non-nil value always
// carries a non-empty Title, while Artists may still be empty when the
// player did not report any.
type TrackMetadata struct {
	// Title of the currently playing track
	Title string
	// Artists credited on the track, in the order the player reports
	// them. More than one entry for collaborations.
	Artists []string
}

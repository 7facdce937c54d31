package feedback

import "time"

const (
	// collection names
	usersNode    string = "users"
	feedbackNode string = "feedback"
	flaggedNode  string = "flaggedFeedback"

	// Fields' name and path
	IdFieldPath         string = "id"
	AppIdFieldPath      string = "appId"
	RatingFieldPath     string = "rating"
	SentimentFieldPath  string = "sentiment"
	TimestampFieldPath  string = "timestamp"
	IsVerifiedFieldPath string = "isVerified"

	// It must not exceed the write timeout of the database.firestore.notifyOnChanges
	channelWriteTimeout time.Duration = time.Second * 3
)

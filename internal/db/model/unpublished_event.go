package model

// UnpublishedEventDocument holds an event body the queue refused, for replay.
type UnpublishedEventDocument struct {
	EventID     string `bson:"_id"`
	Seq         int64  `bson:"seq"`
	MessageBody string `bson:"message_body"`
}

func NewUnpublishedEventDocument(eventID string, seq int64, messageBody string) *UnpublishedEventDocument {
	return &UnpublishedEventDocument{
		EventID:     eventID,
		Seq:         seq,
		MessageBody: messageBody,
	}
}

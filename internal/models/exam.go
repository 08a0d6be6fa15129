package models

import "time"

// NodeType identifies which kind of tree node a test batch belongs to.
type NodeType string

const (
	NodeFullMock NodeType = "full_mock"
	NodePYQ      NodeType = "pyq"
	NodeSection  NodeType = "section"
	NodeTopic    NodeType = "topic"
)

// Exam is one organizer document. The document id is the derived slug of Name,
// and sections live embedded in the document rather than in their own
// collection; every section/topic addition rewrites the full array.
type Exam struct {
	Name      string    `json:"name" validate:"required,max=200"`
	FullMock  string    `json:"full_mock"`
	PYQs      string    `json:"pyqs"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
}

// Section is embedded in an Exam. SectionBatchID doubles as the primary key of
// the section's testBatches document.
type Section struct {
	Name           string    `json:"name"`
	SectionBatchID string    `json:"section_batchid"`
	Topics         []Topic   `json:"topics"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Topic is a leaf grouping under a Section.
type Topic struct {
	Name          string    `json:"name"`
	TopicBatchID  string    `json:"topic_batchid"`
	NoOfQuestions int       `json:"no_of_questions"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FindSection returns the index of the section whose batch id matches
// sectionBatchID, or -1 when no such section exists.
func (e *Exam) FindSection(sectionBatchID string) int {
	for i := range e.Sections {
		if e.Sections[i].SectionBatchID == sectionBatchID {
			return i
		}
	}
	return -1
}

// FindTopic returns the index of the topic whose batch id matches
// topicBatchID, or -1 when no such topic exists.
func (s *Section) FindTopic(topicBatchID string) int {
	for i := range s.Topics {
		if s.Topics[i].TopicBatchID == topicBatchID {
			return i
		}
	}
	return -1
}

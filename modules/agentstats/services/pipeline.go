package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/agent-etl/modules/agentstats/domain"
)

// Pipeline runs the transform stage: validate each row, parse the agent
// identity, fan out into typed records and collect them into a batch.
// Row-scoped failures never escape; they come back as rejections.
type Pipeline struct {
	validator *Validator
	mapper    *Mapper
	logger    *logrus.Logger
}

func NewPipeline(logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		validator: NewValidator(),
		mapper:    NewMapper(),
		logger:    logger,
	}
}

// Process transforms all rows of one input file for one run date.
func (p *Pipeline) Process(rows []RawRow, runDate time.Time) (*Batch, []RowRejection) {
	batch := NewBatch()
	var rejections []RowRejection

	for _, row := range rows {
		validated, rej := p.validator.Validate(row)
		if rej != nil {
			p.warn(*rej)
			rejections = append(rejections, *rej)
			continue
		}

		id, err := domain.ParseAgentIdentity(validated.Agent)
		if err != nil {
			rej := RowRejection{
				Line:   row.Line,
				Kind:   RejectIdentity,
				Column: AgentColumn,
				Reason: err.Error(),
			}
			p.warn(rej)
			rejections = append(rejections, rej)
			continue
		}

		batch.Add(p.mapper.Map(validated, id, runDate))
	}

	return batch, rejections
}

func (p *Pipeline) warn(rej RowRejection) {
	if p.logger == nil {
		return
	}
	p.logger.WithFields(logrus.Fields{
		"line":   rej.Line,
		"kind":   rej.Kind,
		"column": rej.Column,
	}).Warn(rej.Reason)
}

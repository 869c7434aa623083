package commands

import (
	"context"
	"errors"
	"time"

	"uidkit/internal/core/domain/model/issuance"
	"uidkit/internal/core/domain/model/uid"
	"uidkit/internal/core/ports"
	"uidkit/internal/pkg/errs"
)

// GeneratedIdentifier is one identifier handed out by GenerateIdentifiersCommandHandler.
type GeneratedIdentifier struct {
	ID       uid.UUID
	Scheme   issuance.Scheme
	Value    string
	IssuedAt time.Time
}

// GenerateIdentifiersCommandHandler issues identifiers and records every one of them in the
// issuance registry within a single transaction: either the whole batch is recorded or none.
//
// Name-based identifiers are deterministic. Requesting one that is already recorded returns
// the existing record instead of failing.
//
// Example:
//
//	handler := NewGenerateIdentifiersCommandHandler(uowFactory, generator, time.Now)
//	cmd, _ := NewGenerateIdentifiersCommand("v5", 1, "dns", "example.com", "")
//
//	ids, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("generation failed: %w", err)
//	}
//	fmt.Println(ids[0].Value) // cfbff0d1-9375-5685-968c-48ce8b15ae17
type GenerateIdentifiersCommandHandler struct {
	uowFactory IssuanceUoWFactory
	generator  ports.IdentifierGenerator
	now        func() time.Time
}

func NewGenerateIdentifiersCommandHandler(
	uowFactory IssuanceUoWFactory,
	generator ports.IdentifierGenerator,
	now func() time.Time,
) GenerateIdentifiersCommandHandler {
	return GenerateIdentifiersCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		now:        now,
	}
}

// Handle generates cmd.Count() identifiers in issue order.
func (h *GenerateIdentifiersCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateIdentifiersCommand,
) ([]GeneratedIdentifier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.IssuanceRepository()
	issuedAt := h.now()
	generated := make([]GeneratedIdentifier, 0, cmd.Count())

	for range cmd.Count() {
		id, err := h.generate(cmd)
		if err != nil {
			return nil, err
		}

		record, err := h.record(ctx, repo, cmd, id, issuedAt)
		if err != nil {
			return nil, err
		}

		value := record.Value()
		if cmd.Format() != 0 {
			if value, err = record.ID().Encode(cmd.Format()); err != nil {
				return nil, err
			}
		}

		generated = append(generated, GeneratedIdentifier{
			ID:       record.ID(),
			Scheme:   record.Scheme(),
			Value:    value,
			IssuedAt: record.IssuedAt(),
		})
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return generated, nil
}

func (h *GenerateIdentifiersCommandHandler) generate(cmd GenerateIdentifiersCommand) (uid.UUID, error) {
	if cmd.Scheme() == issuance.SchemeULID {
		return h.generator.ULID().ToUUID(), nil
	}

	kind, _ := cmd.Scheme().Kind()
	return h.generator.Generate(kind, cmd.Namespace(), cmd.Name())
}

func (h *GenerateIdentifiersCommandHandler) record(
	ctx context.Context,
	repo ports.IssuanceRepository,
	cmd GenerateIdentifiersCommand,
	id uid.UUID,
	issuedAt time.Time,
) (*issuance.Issuance, error) {
	if cmd.Scheme().IsNameBased() {
		existing, err := repo.Get(ctx, id)
		if err == nil {
			return existing, nil
		}
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record, err := issuance.NewIssuance(id, cmd.Scheme(), issuedAt, cmd.Namespace(), cmd.Name())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

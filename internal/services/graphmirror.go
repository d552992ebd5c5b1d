package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/platform/neo4jdb"
	"github.com/inneratlas/inneratlas-backend/internal/types"
)

// GraphMirrorService keeps an optional Neo4j projection of the parts
// graph for neighborhood queries. When the client is nil every write is
// a no-op and reads return empty results, so callers never branch on
// whether the mirror is configured.
type GraphMirrorService interface {
	UpsertPart(ctx context.Context, part *types.Part)
	RemovePart(ctx context.Context, partID uuid.UUID)
	UpsertRelationship(ctx context.Context, rel *types.Relationship)
	RemoveRelationship(ctx context.Context, relID uuid.UUID)
	RelatedParts(ctx context.Context, partID uuid.UUID) ([]uuid.UUID, error)
	Enabled() bool
}

type graphMirrorService struct {
	log    *logger.Logger
	client *neo4jdb.Client
}

func NewGraphMirrorService(log *logger.Logger, client *neo4jdb.Client) GraphMirrorService {
	return &graphMirrorService{
		log:    log.With("service", "GraphMirrorService"),
		client: client,
	}
}

func (gm *graphMirrorService) Enabled() bool {
	return gm.client != nil
}

// Mirror writes are best-effort: the relational store is the source of
// truth, so failures are logged and swallowed.
func (gm *graphMirrorService) UpsertPart(ctx context.Context, part *types.Part) {
	if gm.client == nil || part == nil {
		return
	}
	err := gm.client.ExecuteWrite(ctx, `
		MERGE (p:Part {id: $id})
		SET p.name = $name, p.role = $role, p.system_id = $systemID
	`, map[string]any{
		"id":       part.ID.String(),
		"name":     part.Name,
		"role":     part.Role,
		"systemID": part.SystemID.String(),
	})
	if err != nil {
		gm.log.Warn("failed to mirror part", "partID", part.ID, "error", err)
	}
}

func (gm *graphMirrorService) RemovePart(ctx context.Context, partID uuid.UUID) {
	if gm.client == nil {
		return
	}
	err := gm.client.ExecuteWrite(ctx, `
		MATCH (p:Part {id: $id}) DETACH DELETE p
	`, map[string]any{"id": partID.String()})
	if err != nil {
		gm.log.Warn("failed to remove mirrored part", "partID", partID, "error", err)
	}
}

func (gm *graphMirrorService) UpsertRelationship(ctx context.Context, rel *types.Relationship) {
	if gm.client == nil || rel == nil {
		return
	}
	err := gm.client.ExecuteWrite(ctx, `
		MATCH (src:Part {id: $sourceID}), (dst:Part {id: $targetID})
		MERGE (src)-[r:RELATES {id: $id}]->(dst)
		SET r.type = $type
	`, map[string]any{
		"id":       rel.ID.String(),
		"sourceID": rel.SourceID.String(),
		"targetID": rel.TargetID.String(),
		"type":     rel.RelationshipType,
	})
	if err != nil {
		gm.log.Warn("failed to mirror relationship", "relationshipID", rel.ID, "error", err)
	}
}

func (gm *graphMirrorService) RemoveRelationship(ctx context.Context, relID uuid.UUID) {
	if gm.client == nil {
		return
	}
	err := gm.client.ExecuteWrite(ctx, `
		MATCH ()-[r:RELATES {id: $id}]->() DELETE r
	`, map[string]any{"id": relID.String()})
	if err != nil {
		gm.log.Warn("failed to remove mirrored relationship", "relationshipID", relID, "error", err)
	}
}

// RelatedParts returns the ids of parts one hop away in either
// direction.
func (gm *graphMirrorService) RelatedParts(ctx context.Context, partID uuid.UUID) ([]uuid.UUID, error) {
	if gm.client == nil {
		return nil, nil
	}
	records, err := gm.client.ExecuteRead(ctx, `
		MATCH (p:Part {id: $id})-[:RELATES]-(other:Part)
		RETURN DISTINCT other.id AS id
	`, map[string]any{"id": partID.String()})
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(records))
	for _, rec := range records {
		raw, ok := rec.Get("id")
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		id, pErr := uuid.Parse(s)
		if pErr != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

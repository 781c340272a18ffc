package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	domain "github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	committer "github.com/murkotick/catalog-purchase-service/internal/pkg/committer"
)

var (
	emulatorOnce   sync.Once
	emulatorClient *spanner.Client
	emulatorErr    error
)

// emulatorStore returns a store bound to a fresh emulator database, or skips
// the test when SPANNER_EMULATOR_HOST is not set.
func emulatorStore(t *testing.T) (*SpannerStore, *spanner.Client) {
	t.Helper()
	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	emulatorOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		emulatorClient, emulatorErr = createEmulatorDatabase(ctx)
	})
	require.NoError(t, emulatorErr)

	return NewSpannerStore(emulatorClient, committer.NewAdapter(emulatorClient)), emulatorClient
}

func createEmulatorDatabase(ctx context.Context) (*spanner.Client, error) {
	projectID := envOr("SPANNER_PROJECT_ID", "test-project")
	instanceID := envOr("SPANNER_INSTANCE_ID", "emulator-instance")
	databaseID := "repo_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]

	parent := "projects/" + projectID
	instName := parent + "/instances/" + instanceID
	dbName := instName + "/databases/" + databaseID

	instAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("instance admin client: %w", err)
	}
	defer instAdmin.Close()

	if _, err := instAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instName}); err != nil {
		if status.Code(err) != codes.NotFound {
			return nil, fmt.Errorf("GetInstance: %w", err)
		}
		op, err := instAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
			Parent:     parent,
			InstanceId: instanceID,
			Instance: &instancepb.Instance{
				Config:      parent + "/instanceConfigs/emulator-config",
				DisplayName: "Repo Test Instance",
				NodeCount:   1,
			},
		})
		if err != nil && status.Code(err) != codes.AlreadyExists {
			return nil, fmt.Errorf("CreateInstance: %w", err)
		}
		if err == nil {
			if _, err := op.Wait(ctx); err != nil {
				return nil, fmt.Errorf("CreateInstance wait: %w", err)
			}
		}
	}

	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_initial_schema.sql"))
	if err != nil {
		return nil, err
	}

	dbAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("database admin client: %w", err)
	}
	defer dbAdmin.Close()

	op, err := dbAdmin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
		ExtraStatements: splitDDL(string(ddl)),
	})
	if err != nil {
		return nil, fmt.Errorf("CreateDatabase: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return nil, fmt.Errorf("CreateDatabase wait: %w", err)
	}

	return spanner.NewClient(ctx, dbName)
}

func splitDDL(sql string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(sql, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		out = append(out, line)
	}
	stmts := make([]string, 0)
	for _, p := range strings.Split(strings.Join(out, "\n"), ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func outboxTypes(ctx context.Context, t *testing.T, client *spanner.Client, aggregateID string) []string {
	t.Helper()
	iter := client.Single().Query(ctx, spanner.Statement{
		SQL:    `SELECT event_type FROM outbox_events WHERE aggregate_id = @id ORDER BY created_at ASC, event_id ASC`,
		Params: map[string]interface{}{"id": aggregateID},
	})
	defer iter.Stop()

	var out []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out
		}
		require.NoError(t, err)
		var typ string
		require.NoError(t, row.Columns(&typ))
		out = append(out, typ)
	}
}

func TestSpannerStore_Emulator_PurchaseFlow(t *testing.T) {
	store, client := emulatorStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t0 := time.Now().UTC().Truncate(time.Millisecond)
	id := uuid.NewString()
	p, err := domain.NewProduct(id, "Widget", "blue", "tools", 10, 5, t0)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, p))

	loaded, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), loaded.Stock())

	_, err = loaded.Purchase(3, t0.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, store.UpdateIfStock(ctx, loaded, 5))

	after, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), after.Stock())
	assert.Equal(t, t0.Add(time.Second), after.UpdatedAt())

	// A stale read loses against the committed decrement.
	stale := domain.ReconstructProduct(id, "Widget", "blue", "tools", 10, 5, t0, t0)
	_, err = stale.Purchase(1, t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.ErrorIs(t, store.UpdateIfStock(ctx, stale, 5), domain.ErrConcurrentModification)

	assert.Equal(t, []string{"product.created", "product.purchased"}, outboxTypes(ctx, t, client, id))
}

func TestSpannerStore_Emulator_DeleteAndScan(t *testing.T) {
	store, _ := emulatorStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	category := "cat-" + uuid.NewString()[:8]
	id := uuid.NewString()
	p, err := domain.NewProduct(id, "Gadget", "", category, 3, 1, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, p))

	items, err := store.Scan(ctx, contracts.ScanFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Delete(ctx, id, domain.NewProductDeletedEvent(id, time.Now().UTC())))
	assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrProductNotFound)

	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	missing := domain.ReconstructProduct(id, "Gadget", "", category, 3, 1, time.Now(), time.Now())
	require.NoError(t, missing.Restock(30, time.Now().UTC()))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(store.Update(ctx, missing)))
}

// Command listpools connects to the system bus, fetches the managed objects of
// the stratis daemon, and prints every pool and filesystem it finds.
//
// It needs a running stratisd to show anything; without one the fetch fails
// with the bus error explaining that the service is not available.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/dbusengine"
	"github.com/AntonStoeckl/managed-objects-snapshot-go/snapshotview/stratis"
)

const fetchTimeout = 5 * time.Second

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger); err != nil {
		logger.Error("listpools failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	defer conn.Close() //nolint:errcheck

	fetcher, err := dbusengine.NewFetcherFromConn(
		conn,
		stratis.ServiceName,
		stratis.ManagerObjectPath,
		dbusengine.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	managed, err := stratis.GetManagedObjects(ctx, fetcher)
	if err != nil {
		return err
	}

	if err := printPools(managed); err != nil {
		return err
	}

	return printFilesystems(managed)
}

func printPools(managed stratis.ManagedObjects) error {
	pools, err := managed.Pools(snapshotview.QuerySpec{})
	if err != nil {
		return err
	}

	for objectPath, table := range pools {
		pool := stratis.BindPool(table)

		name, err := pool.Name()
		if err != nil {
			return err
		}

		poolUUID, err := pool.UUID()
		if err != nil {
			return err
		}

		fmt.Printf("pool %s (uuid %s) at %s\n", name, poolUUID, objectPath)
	}

	return nil
}

func printFilesystems(managed stratis.ManagedObjects) error {
	filesystems, err := managed.Filesystems()
	if err != nil {
		return err
	}

	for objectPath, table := range filesystems {
		filesystem := stratis.BindFilesystem(table)

		name, err := filesystem.Name()
		if err != nil {
			return err
		}

		devnode, err := filesystem.Devnode()
		if err != nil {
			return err
		}

		fmt.Printf("filesystem %s (devnode %s) at %s\n", name, devnode, objectPath)
	}

	return nil
}

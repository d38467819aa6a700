// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/havona-inc/havonad/account"
	"github.com/havona-inc/havonad/chain"
	"github.com/havona-inc/havonad/fault"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultPidFile       = "havonad.pid"

	defaultLevelDBDirectory = "data"
	defaultHavonaDatabase   = chain.Havona + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultEventLogFile = "events.log"

	defaultLogDirectory = "log"
	defaultLogFile      = "havonad.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// path expanded or calculated defaults
var defaultLogLevels = map[string]string{
	"main":            "info",
	"config":          "info",
	logger.DefaultTag: "error",
}

// DatabaseType - where the record store lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// StoreType - deployment parameters bound into the structured-data
// domain separator
type StoreType struct {
	Name     string `gluamapper:"name" json:"name"`
	Version  string `gluamapper:"version" json:"version"`
	Identity string `gluamapper:"identity" json:"identity"`
}

// Configuration - the daemon configuration
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Operator      string       `gluamapper:"operator" json:"operator"`
	SkipVerify    bool         `gluamapper:"skip_verify" json:"skip_verify"`
	EventLogFile  string       `gluamapper:"event_log_file" json:"event_log_file"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	Store         StoreType    `gluamapper:"store" json:"store"`

	Logging logger.Configuration `gluamapper:"logging" json:"logging"`
}

// OperatorIdentity - the parsed operator account
func (config *Configuration) OperatorIdentity() (account.Identity, error) {
	return account.IdentityFromHexString(config.Operator)
}

// StoreIdentity - the parsed store instance address
func (config *Configuration) StoreIdentity() (account.Identity, error) {
	return account.IdentityFromHexString(config.Store.Identity)
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       defaultPidFile,
		Chain:         chain.Havona,
		EventLogFile:  defaultEventLogFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultHavonaDatabase,
		},

		Store: StoreType{
			Name:    "Havona Persistor",
			Version: "1",
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	// relaxed verification is a test-only facility
	if options.SkipVerify && !chain.IsTesting(options.Chain) {
		return nil, fault.SkipVerifyNotAllowed
	}

	// the operator account is mandatory
	if _, err := options.OperatorIdentity(); nil != err {
		return nil, err
	}
	if _, err := options.StoreIdentity(); nil != err {
		return nil, err
	}

	// if database was not changed from default pick the chain's own
	if options.Database.Name == defaultHavonaDatabase {
		switch options.Chain {
		case chain.Havona:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PidFile,
		&options.Database.Directory,
		&options.EventLogFile,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = EnsureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must not
	// contain a path separator, then add the correct directory prefix
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = EnsureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("files: %q is not a plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{&options.Database.Directory, &options.Logging.Directory} {
		*d = EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

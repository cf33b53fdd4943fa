/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package config

import "github.com/zalando/go-keyring"

// osKeyring implements TokenStore using the OS keyring via github.com/zalando/go-keyring.
// On headless systems without a secret service the calls fail; Load treats a
// missing token as "not logged in".
type osKeyring struct{}

func (k *osKeyring) Get(service, key string) (string, error) {
	return keyring.Get(service, key)
}

func (k *osKeyring) Set(service, key, value string) error {
	return keyring.Set(service, key, value)
}

func (k *osKeyring) Delete(service, key string) error {
	return keyring.Delete(service, key)
}

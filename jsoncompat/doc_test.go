package json_test

// This package is a compatibility layer over encoding/json and
// encoding/json/v2. It is a thin delegation to the standard library and is
// exercised through the parent package tests, so it carries no tests of its
// own.

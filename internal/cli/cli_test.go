package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerbase/internal/api"
	"github.com/mcoot/playerbase/internal/factory"
	"github.com/mcoot/playerbase/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	server *httptest.Server
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	app := factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		PlayerService: app.PlayerService,
		StorageType:   app.StorageType,
	}))
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes playerctl against the test server and returns stdout
func (s *CLISuite) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", s.server.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) create(name, race string, xp string, banned bool) Player {
	args := []string{"-o", "json", "player", "create",
		"--name", name,
		"--title", "of " + race,
		"--race", race,
		"--profession", "DRUID",
		"--birthday", "2005-05-05",
		"--experience", xp,
	}
	if banned {
		args = append(args, "--banned")
	}
	out, err := s.run(args...)
	s.Require().NoError(err, out)

	var p Player
	s.Require().NoError(json.Unmarshal([]byte(out), &p))
	return p
}

func (s *CLISuite) TestHealth() {
	out, err := s.run("health")
	s.Require().NoError(err)
	s.Contains(out, "Status: ok")
	s.Contains(out, "Storage: memory")
}

func (s *CLISuite) TestCreateAndGet() {
	p := s.create("Radagast", "HUMAN", "600", false)
	s.Equal(3, p.Level)
	s.Equal(400, p.UntilNextLevel)
	s.Equal("2005-05-05", formatBirthday(p.Birthday))

	out, err := s.run("player", "get", "1")
	s.Require().NoError(err)
	s.Contains(out, "Player: Radagast (1)")
	s.Contains(out, "Experience: 600 (level 3, 400 to next)")
	s.Contains(out, "Banned: no")
}

func (s *CLISuite) TestCreateRequiresFlags() {
	_, err := s.run("player", "create", "--name", "Radagast")
	s.Error(err)
}

func (s *CLISuite) TestUpdateSendsOnlyGivenFlags() {
	s.create("Radagast", "HUMAN", "600", true)

	out, err := s.run("-o", "json", "player", "update", "1", "--experience", "300")
	s.Require().NoError(err, out)

	var p Player
	s.Require().NoError(json.Unmarshal([]byte(out), &p))
	s.Equal("Radagast", p.Name)
	s.True(p.Banned)
	s.Equal(2, p.Level)
}

func (s *CLISuite) TestServerErrorsSurface() {
	_, err := s.run("player", "get", "0")
	s.Require().Error(err)
	s.Contains(err.Error(), "INVALID_INPUT")

	_, err = s.run("player", "delete", "5")
	s.Require().Error(err)
	s.Contains(err.Error(), "PLAYER_NOT_FOUND")
}

func (s *CLISuite) TestDelete() {
	s.create("Radagast", "HUMAN", "600", false)

	out, err := s.run("player", "delete", "1")
	s.Require().NoError(err)
	s.Contains(out, "Deleted player 1")

	_, err = s.run("player", "get", "1")
	s.Error(err)
}

func (s *CLISuite) TestListAndCount() {
	s.create("Aragorn", "HUMAN", "50", true)
	s.create("Boromir", "HUMAN", "100", true)
	s.create("Celeborn", "ELF", "300", false)
	s.create("Denethor", "HUMAN", "500", true)

	out, err := s.run("-o", "json", "player", "list",
		"--min-experience", "100", "--max-experience", "500", "--banned", "--size", "10")
	s.Require().NoError(err, out)

	var page Page
	s.Require().NoError(json.Unmarshal([]byte(out), &page))
	s.Require().Len(page.Players, 2)
	s.Equal("Boromir", page.Players[0].Name)
	s.Equal("Denethor", page.Players[1].Name)

	out, err = s.run("player", "list", "--race", "HUMAN", "--order", "name", "--size", "2")
	s.Require().NoError(err)
	s.Contains(out, "Aragorn")
	s.Contains(out, "Boromir")
	s.NotContains(out, "Denethor")
	s.Contains(out, "Page 1 of 2 (3 players)")

	out, err = s.run("player", "count", "--before", "2005-05-05")
	s.Require().NoError(err)
	s.Contains(out, "Count: 4")

	out, err = s.run("player", "count", "--name", "or")
	s.Require().NoError(err)
	s.Contains(out, "Count: 4")
}

func (s *CLISuite) TestParseTime() {
	t, err := parseTime("2005-05-05")
	s.Require().NoError(err)
	s.Equal(int64(1115251200000), t.UnixMilli())

	t, err = parseTime("1115251200000")
	s.Require().NoError(err)
	s.Equal("2005-05-05", t.Format("2006-01-02"))

	_, err = parseTime("last tuesday")
	s.Error(err)
}

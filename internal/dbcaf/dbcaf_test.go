// Copyright 2025 The OpenChoreo Authors
// SPDX-License-Identifier: Apache-2.0

package dbcaf_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/gotin/kedro-dbc-airflow/internal/dbcaf"
	"github.com/gotin/kedro-dbc-airflow/internal/sparkctx"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/common/config"
	"github.com/gotin/kedro-dbc-airflow/pkg/cli/core/root"
)

const pipelinesYAML = `pipelines:
  __default__:
    nodes:
      - name: node0
        inputs: [input]
        outputs: [output]
      - name: node1
        inputs: [output]
        outputs: [final]
  single:
    nodes:
      - name: lonely
        outputs: [x]
  clash:
    nodes:
      - name: clean_data
        outputs: [clean]
      - name: clean-data
        inputs: [clean]
`

var projectFiles = map[string]string{
	".kedro.yml":                            "project_name: Hello World\npackage_name: hello_world\n",
	"pipelines.yml":                         pipelinesYAML,
	"conf/base/catalog.yml":                 "input:\n  type: MemoryDataSet\n",
	"conf/base/spark.yml":                   "spark.master: local\n",
	"conf/local/credentials.yml":            "token: x\n",
	"src/hello_world/__init__.py":           "",
	"src/hello_world/context.py":            "# original project context\n",
	"src/hello_world/pipelines/__init__.py": "",
	"src/hello_world/pipelines/nodes.py":    "def identity(x):\n    return x\n",
	"src/hello_world/pipelines/notes.txt":   "not python\n",
	"src/hello_world/__pycache__/nodes.pyc": "bytecode",
	"src/hello_world/__pycache__/cached.py": "cached\n",
}

func writeProject(dir string) {
	for rel, content := range projectFiles {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	}
}

func run(args ...string) (string, error) {
	cmd := root.BuildRootCmd(config.DefaultConfig(), dbcaf.NewCommandImplementation())
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(GinkgoWriter)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var _ = Describe("dbcaf", func() {
	var (
		projectDir string
		targetDir  string
		dagPath    string
	)

	BeforeEach(func() {
		projectDir = GinkgoT().TempDir()
		targetDir = filepath.Join(GinkgoT().TempDir(), "airflow_dags")
		dagPath = filepath.Join(targetDir, "hello_world_dag.py")
		writeProject(projectDir)
	})

	Describe("create", func() {
		It("renders the DAG and stages the project", func() {
			out, err := run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir)
			Expect(err).NotTo(HaveOccurred())

			By("rendering one task per node and one dependency per edge")
			dag, err := os.ReadFile(dagPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(dag)).To(ContainSubstring(`tasks["node0"] >> tasks["node1"]`))
			Expect(string(dag)).To(ContainSubstring(`task_id="node0"`))
			Expect(string(dag)).To(ContainSubstring(`task_id="node1"`))
			Expect(string(dag)).To(ContainSubstring(filepath.Join(targetDir, "kedro_conf", "hello_world")))

			By("staging the configuration")
			confDir := filepath.Join(targetDir, "kedro_conf", "hello_world", "conf")
			Expect(filepath.Join(confDir, "base", "catalog.yml")).To(BeAnExistingFile())
			Expect(filepath.Join(confDir, "base", "spark.yml")).To(BeAnExistingFile())
			Expect(filepath.Join(confDir, "local", "credentials.yml")).To(BeAnExistingFile())
			Expect(filepath.Join(targetDir, "kedro_conf", "hello_world", "logs")).To(BeADirectory())

			By("staging only Python sources outside reserved directories")
			pkgDir := filepath.Join(targetDir, "hello_world")
			Expect(filepath.Join(pkgDir, "__init__.py")).To(BeAnExistingFile())
			Expect(filepath.Join(pkgDir, "pipelines", "nodes.py")).To(BeAnExistingFile())
			Expect(filepath.Join(pkgDir, "pipelines", "notes.txt")).NotTo(BeAnExistingFile())
			Expect(filepath.Join(pkgDir, "__pycache__")).NotTo(BeAnExistingFile())

			By("replacing the project context with the bootstrap")
			staged, err := os.ReadFile(filepath.Join(pkgDir, sparkctx.BootstrapFile))
			Expect(err).NotTo(HaveOccurred())
			Expect(staged).To(Equal(sparkctx.Bootstrap()))

			By("leaving the project untouched")
			original, err := os.ReadFile(filepath.Join(projectDir, "src", "hello_world", "context.py"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(original)).To(Equal("# original project context\n"))

			By("printing guidance")
			Expect(out).To(ContainSubstring("An Airflow DAG has been generated in:"))
			Expect(out).To(ContainSubstring(dagPath))
		})

		It("overwrites the DAG on a second run", func() {
			_, err := run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(os.WriteFile(dagPath, []byte("stale"), 0o600)).To(Succeed())

			_, err = run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir)
			Expect(err).NotTo(HaveOccurred())
			dag, err := os.ReadFile(dagPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(dag)).To(ContainSubstring("KedroOperator"))
		})

		It("renders a pipeline without dependencies", func() {
			_, err := run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir, "-p", "single")
			Expect(err).NotTo(HaveOccurred())
			dag, err := os.ReadFile(dagPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(dag)).To(ContainSubstring(`task_id="lonely"`))
			Expect(string(dag)).NotTo(ContainSubstring(">>"))
		})

		It("starts the session with the given settings in every task", func() {
			_, err := run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir,
				"--conf", "spark.master=sc://workspace", "--conf", "spark.databricks.service.port=8787")
			Expect(err).NotTo(HaveOccurred())
			dag, err := os.ReadFile(dagPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(dag)).To(ContainSubstring(`"spark.master": "sc://workspace",`))
			Expect(string(dag)).To(ContainSubstring(`"spark.databricks.service.port": "8787",`))
			Expect(string(dag)).To(ContainSubstring("init_spark_session(self.spark_conf)"))
		})

		It("writes nothing when two nodes map to the same task id", func() {
			_, err := run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir, "-p", "clash")
			Expect(err).To(MatchError(ContainSubstring(`"clean_data" and "clean-data"`)))
			Expect(targetDir).NotTo(BeADirectory())
		})

		It("writes nothing for an unknown pipeline", func() {
			_, err := run("dbcaf", "create", "--project-path", projectDir, "-t", targetDir, "-p", "nope")
			Expect(err).To(MatchError(ContainSubstring("nope")))
			Expect(targetDir).NotTo(BeADirectory())
		})

		It("takes settings from the config file", func() {
			cfgPath := filepath.Join(GinkgoT().TempDir(), "dbcaf.yaml")
			Expect(os.WriteFile(cfgPath, []byte("dag:\n  owner: data-eng\n  retries: 4\n"), 0o600)).To(Succeed())

			_, err := run("--config", cfgPath, "dbcaf", "create", "--project-path", projectDir, "-t", targetDir)
			Expect(err).NotTo(HaveOccurred())
			dag, err := os.ReadFile(dagPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(dag)).To(ContainSubstring(`"owner": "data-eng"`))
			Expect(string(dag)).To(ContainSubstring(`"retries": 4`))
		})
	})

	Describe("dependencies", func() {
		It("prints the dependency mapping", func() {
			out, err := run("dbcaf", "deps", "--project-path", projectDir, "-o", "json")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchJSON(`{
				"pipeline": "__default__",
				"env": "local",
				"nodes": ["node0", "node1"],
				"dependencies": [{"parent": "node0", "children": ["node1"]}]
			}`))
		})
	})

	Describe("spark-conf", func() {
		It("prints the merged session configuration", func() {
			out, err := run("dbcaf", "spark-conf", "--project-path", projectDir, "--conf", "spark.master=sc://remote")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("spark.app.name=hello_world\n"))
			Expect(out).To(ContainSubstring("spark.master=sc://remote\n"))
			Expect(out).To(ContainSubstring("spark.sql.catalogImplementation=hive\n"))
		})
	})

	Describe("config", func() {
		It("prints the resolved configuration", func() {
			out, err := run("dbcaf", "config", "-e", "prod", "--log-level", "debug")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("env: prod\n"))
			Expect(out).To(ContainSubstring("level: debug\n"))
			Expect(out).To(ContainSubstring("pipeline: __default__\n"))
		})

		It("rejects invalid settings", func() {
			_, err := run("dbcaf", "config", "--log-format", "xml")
			Expect(err).To(MatchError(ContainSubstring("logging.format")))
		})
	})
})

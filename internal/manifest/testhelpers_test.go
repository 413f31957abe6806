package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const legacyProject = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <ItemGroup>
    <Compile Include="..\Shared\GlobalAssemblyInfo.cs" />
    <Compile Include="Properties\AssemblyInfo.cs" />
    <Compile Include="Program.cs" />
  </ItemGroup>
</Project>
`

const globalAssemblyInfo = `using System.Reflection;

[assembly: AssemblyCompany("Acme Corp")]
[assembly: AssemblyCopyright("Copyright © Acme 2024")]
`

const projectAssemblyInfo = `using System.Reflection;
using System.Runtime.InteropServices;

// [assembly: AssemblyTitle("Commented Out")]
[assembly: AssemblyTitle("Acme Desktop")]
[assembly: AssemblyDescription("Line of business app")]
[assembly: AssemblyProduct("Acme Suite")]
[assembly: ComVisible(false)]
[assembly: AssemblyVersion("1.4.0.0")]
[assembly: AssemblyFileVersion("1.4.0.7")]
`

const acmeDescriptor = `<?xml version="1.0" encoding="utf-8"?>
<asmv1:assembly xsi:schemaLocation="urn:schemas-microsoft-com:asm.v1 assembly.adaptive.xsd" manifestVersion="1.0" xmlns:asmv1="urn:schemas-microsoft-com:asm.v1" xmlns="urn:schemas-microsoft-com:asm.v2" xmlns:asmv2="urn:schemas-microsoft-com:asm.v2" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:co.v1="urn:schemas-microsoft-com:clickonce.v1">
  <assemblyIdentity name="Acme.App.application" version="2.1.0.0" publicKeyToken="0000000000000000" language="neutral" processorArchitecture="msil" xmlns="urn:schemas-microsoft-com:asm.v1" />
  <description asmv2:publisher="Acme Inc" asmv2:product="Acme" asmv2:suiteName="Tools" xmlns="urn:schemas-microsoft-com:asm.v1" />
  <deployment install="true" mapFileExtensions="true" />
  <compatibleFrameworks xmlns="urn:schemas-microsoft-com:clickonce.v2">
    <framework targetVersion="4.0" profile="Full" supportedRuntime="4.0.30319" />
    <framework targetVersion="4.7.2" profile="Full" supportedRuntime="4.0.30319" />
  </compatibleFrameworks>
  <dependency>
    <dependentAssembly dependencyType="install" codebase="Application Files\Acme.App_2_1_0_0\Acme.App.exe.manifest" size="4321">
      <assemblyIdentity name="Acme.App.exe" version="2.1.0.0" publicKeyToken="0000000000000000" language="neutral" processorArchitecture="msil" type="win32" />
    </dependentAssembly>
  </dependency>
</asmv1:assembly>
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeProject lays out a project with a shared and a local assembly info file.
func writeProject(t *testing.T, root string) string {
	t.Helper()
	writeFile(t, filepath.Join(root, "Shared", "GlobalAssemblyInfo.cs"), globalAssemblyInfo)
	writeFile(t, filepath.Join(root, "App", "Properties", "AssemblyInfo.cs"), projectAssemblyInfo)
	return writeFile(t, filepath.Join(root, "App", "Acme.App.csproj"), legacyProject)
}
